package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
	"contentforge/internal/observability/metrics"
	"contentforge/internal/resilience/circuitbreaker"
	"contentforge/internal/resilience/ratelimit"
	"contentforge/internal/resilience/retry"
)

// OpenAI implements Generator using OpenAI's chat completion API. It is the
// fallback provider and mirrors the Claude adapter's reliability wiring.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         config.OpenAIConfig

	mu      sync.Mutex
	limiter *ratelimit.Limiter
}

// NewOpenAI creates an OpenAI generator from the given configuration.
func NewOpenAI(cfg config.OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai generator: API key is required")
	}

	limiter, err := ratelimit.New(cfg.RequestsPerMinute)
	if err != nil {
		return nil, fmt.Errorf("openai generator: %w", err)
	}

	slog.Info("Initialized OpenAI generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &OpenAI{
		client:         openai.NewClient(cfg.APIKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.GeneratorConfig(),
		config:         cfg,
		limiter:        limiter,
	}, nil
}

// Name implements Generator.
func (o *OpenAI) Name() string { return "openai" }

// Complete runs one generation call with rate limiting, retry, and circuit
// breaking. The last attempt's error is returned as-is after exhaustion.
func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (*Result, error) {
	if err := apierr.Require(prompt != "", "prompt must not be empty"); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result *Result

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		o.throttle()

		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, system, prompt)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*Result)
		return nil
	})

	metrics.SetCircuitBreakerState(o.circuitBreaker.Name(), o.circuitBreaker.State())

	if retryErr != nil {
		return nil, retryErr
	}
	return result, nil
}

func (o *OpenAI) throttle() {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	o.limiter.Throttle()
	if time.Since(start) > time.Millisecond {
		metrics.RecordRateLimitWait(o.Name())
	}
}

// doComplete performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doComplete(ctx context.Context, system, prompt string) (*Result, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	slog.InfoContext(ctx, "Starting generation",
		slog.String("provider", o.Name()),
		slog.String("model", o.config.Model),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages:  messages,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return nil, apierr.API("openai api returned empty response", nil)
	}

	result := &Result{
		Text:         resp.Choices[0].Message.Content,
		Model:        o.config.Model,
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
		Duration:     duration,
	}

	slog.InfoContext(ctx, "Generation completed",
		slog.Int("output_length", len(result.Text)),
		slog.Int64("input_tokens", result.InputTokens),
		slog.Int64("output_tokens", result.OutputTokens),
		slog.Duration("duration", duration))

	metrics.RecordGenerationTokens(o.Name(), result.InputTokens, result.OutputTokens)

	return result, nil
}
