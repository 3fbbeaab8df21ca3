// Package generator provides AI text generation adapters for the content
// pipeline. It includes Claude (Anthropic) and OpenAI implementations with
// reliability patterns: outbound rate limiting, retry with exponential
// backoff, and circuit breaking, plus structured logging and Prometheus
// metrics on every call.
package generator

import (
	"context"
	"time"
)

// Result is the outcome of a single generation call.
type Result struct {
	// Text is the raw model output.
	Text string

	// Model is the model identifier that produced the output.
	Model string

	// InputTokens and OutputTokens report token usage as billed by the
	// provider, for cost tracking.
	InputTokens  int64
	OutputTokens int64

	// Duration is the wall-clock time of the final (successful) attempt.
	Duration time.Duration
}

// Generator produces text from a system instruction and a user prompt.
// Implementations handle provider-specific transport, rate limiting, and
// error classification; callers see taxonomy errors from the apierr package
// or the provider error unchanged when it fits no known category.
type Generator interface {
	// Name identifies the provider for logs and metrics ("claude", "openai").
	Name() string

	// Complete runs one generation call. The system string sets persistent
	// instructions (brand voice, format rules); prompt carries the request.
	Complete(ctx context.Context, system, prompt string) (*Result, error)
}
