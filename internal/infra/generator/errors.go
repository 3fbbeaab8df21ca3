package generator

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"contentforge/internal/apierr"
)

// mapAnthropicError converts an Anthropic SDK error into the retry taxonomy.
// HTTP 429 becomes a rate-limit error, other HTTP failures become API
// errors. Errors without an HTTP status (network faults, cancellation,
// anything unexpected) are returned unchanged and left to apierr.Classify.
func mapAnthropicError(err error) error {
	var sdkErr *anthropic.Error
	if errors.As(err, &sdkErr) {
		if sdkErr.StatusCode == http.StatusTooManyRequests {
			return apierr.RateLimit("claude api rate limited", err)
		}
		return apierr.API(fmt.Sprintf("claude api request failed (status %d)", sdkErr.StatusCode), err)
	}
	return err
}

// mapOpenAIError converts a go-openai error into the retry taxonomy,
// mirroring mapAnthropicError for the fallback provider.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return apierr.RateLimit("openai api rate limited", err)
		}
		return apierr.API(fmt.Sprintf("openai api request failed (status %d)", apiErr.HTTPStatusCode), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return apierr.RateLimit("openai api rate limited", err)
		}
		return apierr.API(fmt.Sprintf("openai api request failed (status %d)", reqErr.HTTPStatusCode), err)
	}

	return err
}
