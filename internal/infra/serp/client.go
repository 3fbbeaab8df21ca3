// Package serp fetches search engine result data used by keyword research.
// The client wraps a SerpAPI-compatible HTTP endpoint with token bucket rate
// limiting, retry with exponential backoff, and circuit breaking.
package serp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/resilience/circuitbreaker"
	"contentforge/internal/resilience/retry"
)

const defaultBaseURL = "https://serpapi.com/search"

// OrganicResult is one ranked entry from a search result page.
type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// Client queries a search result API for keyword research data.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	location       string
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a search result client from the given configuration.
// The token bucket allows cfg.SERPMaxRPS sustained requests per second
// with a burst of one, matching the provider's free tier limit.
func NewClient(cfg config.SEOConfig, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		apiKey:         cfg.SERPAPIKey,
		baseURL:        defaultBaseURL,
		location:       cfg.Location,
		limiter:        rate.NewLimiter(rate.Limit(cfg.SERPMaxRPS), 1),
		circuitBreaker: circuitbreaker.New(circuitbreaker.SERPAPIConfig()),
		retryConfig:    retry.SERPConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the subset of the provider's payload the pipeline uses.
type searchResponse struct {
	RelatedSearches []struct {
		Query string `json:"query"`
	} `json:"related_searches"`
	OrganicResults []OrganicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

// RelatedSearches returns query suggestions related to the given seed term.
func (c *Client) RelatedSearches(ctx context.Context, query string) ([]string, error) {
	resp, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	related := make([]string, 0, len(resp.RelatedSearches))
	for _, r := range resp.RelatedSearches {
		if r.Query != "" {
			related = append(related, r.Query)
		}
	}
	return related, nil
}

// OrganicResults returns the top ranked entries for the given query.
func (c *Client) OrganicResults(ctx context.Context, query string) ([]OrganicResult, error) {
	resp, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}
	return resp.OrganicResults, nil
}

// search runs one query through the rate limiter, retry policy, and circuit
// breaker. The final attempt's error is returned as-is after exhaustion.
func (c *Client) search(ctx context.Context, query string) (*searchResponse, error) {
	if err := apierr.Require(query != "", "search query must not be empty"); err != nil {
		return nil, err
	}
	if err := apierr.Require(c.apiKey != "", "search api key is not configured"); err != nil {
		return nil, err
	}

	var result *searchResponse

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("serp rate limiter: %w", err)
		}

		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSearch(ctx, query)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("serp api circuit breaker open, request rejected",
					slog.String("service", "serp-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("serp api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*searchResponse)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}
	return result, nil
}

// doSearch performs the actual HTTP request without retry or circuit breaker.
func (c *Client) doSearch(ctx context.Context, query string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("location", c.location)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create serp request: %w", err)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.RecordSERPRequest(false, duration)
		slog.ErrorContext(ctx, "SERP request failed",
			slog.String("query", query),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, apierr.API("serp api request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.RecordSERPRequest(false, duration)
		return nil, apierr.API("read serp response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordSERPRequest(false, duration)
		slog.WarnContext(ctx, "SERP request returned error status",
			slog.String("query", query),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", duration))
		return nil, apierr.FromHTTPStatus(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.RecordSERPRequest(false, duration)
		return nil, apierr.API("decode serp response", err)
	}

	// The provider reports some failures inside a 200 body.
	if payload.Error != "" {
		metrics.RecordSERPRequest(false, duration)
		return nil, apierr.API(fmt.Sprintf("serp api error: %s", payload.Error), nil)
	}

	metrics.RecordSERPRequest(true, duration)
	slog.DebugContext(ctx, "SERP request completed",
		slog.String("query", query),
		slog.Int("organic_results", len(payload.OrganicResults)),
		slog.Int("related_searches", len(payload.RelatedSearches)),
		slog.Duration("duration", duration))

	return &payload, nil
}
