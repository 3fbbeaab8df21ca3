// Package retry re-invokes fallible operations with exponential backoff.
// Only failures the configured predicate recognizes as retryable are
// retried; everything else propagates to the caller on first occurrence.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"contentforge/internal/apierr"
	"contentforge/internal/observability/metrics"
)

// Config holds the configuration for retry logic.
type Config struct {
	// Name labels the operation in retry metrics.
	Name string

	// MaxRetries is the number of re-attempts after the initial call,
	// so total attempts = MaxRetries + 1. Zero means attempt exactly once.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps any single wait between attempts.
	MaxDelay time.Duration

	// Multiplier is applied to the delay after each failed attempt.
	Multiplier float64

	// RetryOn decides whether a failure is worth retrying.
	// Defaults to apierr.IsRetryable when nil.
	RetryOn func(error) bool
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		Name:         "default",
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     60 * time.Second,
		Multiplier:   2.0,
	}
}

// GeneratorConfig returns configuration tuned for LLM API calls.
// Moderate retry due to cost considerations.
func GeneratorConfig() Config {
	return Config{
		Name:         "generation",
		MaxRetries:   3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// SERPConfig returns configuration tuned for search ranking API calls.
func SERPConfig() Config {
	return Config{
		Name:         "serp",
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// DBConfig returns configuration tuned for database operations.
// Fast retry for transient connection issues.
func DBConfig() Config {
	return Config{
		Name:         "db",
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
	}
}

// WithBackoff executes fn, retrying retryable failures with exponentially
// growing delay. It returns nil on success. When retries are exhausted, or
// when a non-retryable failure occurs (no wait in that case), the error
// surfaced to the caller is exactly the one from the last attempt, never a
// wrapper, so callers can still inspect its kind.
//
// Each invocation gets a fresh attempt counter and delay; the function
// holds no state across calls.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	retryOn := cfg.RetryOn
	if retryOn == nil {
		retryOn = apierr.IsRetryable
	}
	name := cfg.Name
	if name == "" {
		name = "default"
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn()

		if lastErr == nil {
			if attempt > 0 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt+1))
			}
			return nil
		}

		if !retryOn(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt+1),
				slog.String("kind", apierr.Classify(lastErr).String()),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == cfg.MaxRetries {
			break
		}

		metrics.RecordRetryAttempt(name)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", cfg.MaxRetries+1),
			slog.String("kind", apierr.Classify(lastErr).String()),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	metrics.RecordRetryExhausted(name)
	slog.Error("retries exhausted",
		slog.Int("attempts", cfg.MaxRetries+1),
		slog.Any("error", lastErr))
	return lastErr
}
