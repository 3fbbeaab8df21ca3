package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/resilience/circuitbreaker"
	"contentforge/internal/resilience/ratelimit"
	"contentforge/internal/resilience/retry"
)

// Claude implements Generator using Anthropic's Messages API.
// Every attempt passes through the shared rate limiter before hitting the
// circuit breaker, so retries after a throttling error still respect the
// requests-per-minute budget.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         config.ClaudeConfig

	// mu serializes access to the limiter, which keeps no lock of its own.
	mu      sync.Mutex
	limiter *ratelimit.Limiter
}

// NewClaude creates a Claude generator from the given configuration.
// It wires up the rate limiter, circuit breaker, and retry policy.
func NewClaude(cfg config.ClaudeConfig) (*Claude, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude generator: API key is required")
	}

	limiter, err := ratelimit.New(cfg.RequestsPerMinute)
	if err != nil {
		return nil, fmt.Errorf("claude generator: %w", err)
	}

	slog.Info("Initialized Claude generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.GeneratorConfig(),
		config:         cfg,
		limiter:        limiter,
	}, nil
}

// Name implements Generator.
func (c *Claude) Name() string { return "claude" }

// Complete runs one generation call with rate limiting, retry, and circuit
// breaking. When all retries are exhausted the last attempt's error is
// returned as-is, so callers can inspect its taxonomy kind.
func (c *Claude) Complete(ctx context.Context, system, prompt string) (*Result, error) {
	if err := apierr.Require(prompt != "", "prompt must not be empty"); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result *Result

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		c.throttle()

		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, system, prompt)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*Result)
		return nil
	})

	metrics.SetCircuitBreakerState(c.circuitBreaker.Name(), c.circuitBreaker.State())

	if retryErr != nil {
		return nil, retryErr
	}
	return result, nil
}

// throttle applies the requests-per-minute budget under the adapter's lock.
func (c *Claude) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	c.limiter.Throttle()
	if time.Since(start) > time.Millisecond {
		metrics.RecordRateLimitWait(c.Name())
	}
}

// doComplete performs the actual API call without retry or circuit breaker.
func (c *Claude) doComplete(ctx context.Context, system, prompt string) (*Result, error) {
	requestID := uuid.New().String()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	slog.InfoContext(ctx, "Starting generation",
		slog.String("request_id", requestID),
		slog.String("provider", c.Name()),
		slog.String("model", c.config.Model),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, params)

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, mapAnthropicError(err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, apierr.API("claude api returned empty response", nil)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, apierr.API("claude api returned unexpected response type", nil)
	}

	result := &Result{
		Text:         textBlock.Text,
		Model:        c.config.Model,
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
		Duration:     duration,
	}

	slog.InfoContext(ctx, "Generation completed",
		slog.String("request_id", requestID),
		slog.Int("output_length", len(result.Text)),
		slog.Int64("input_tokens", result.InputTokens),
		slog.Int64("output_tokens", result.OutputTokens),
		slog.Duration("duration", duration))

	metrics.RecordGenerationTokens(c.Name(), result.InputTokens, result.OutputTokens)

	return result, nil
}
