package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentforge/internal/apierr"
	"contentforge/internal/config"
)

func claudeTestConfig() config.ClaudeConfig {
	return config.ClaudeConfig{
		APIKey:            "test-key",
		Model:             "claude-sonnet-4-5",
		MaxTokens:         1024,
		RequestsPerMinute: 50,
		Timeout:           30 * time.Second,
	}
}

func openAITestConfig() config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:            "test-key",
		Model:             "gpt-4o",
		MaxTokens:         1024,
		RequestsPerMinute: 60,
		Timeout:           30 * time.Second,
	}
}

func TestNewClaudeRequiresAPIKey(t *testing.T) {
	cfg := claudeTestConfig()
	cfg.APIKey = ""

	_, err := NewClaude(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewClaudeRejectsInvalidRateBudget(t *testing.T) {
	cfg := claudeTestConfig()
	cfg.RequestsPerMinute = 0

	_, err := NewClaude(cfg)

	require.Error(t, err)
}

func TestNewClaudeName(t *testing.T) {
	g, err := NewClaude(claudeTestConfig())

	require.NoError(t, err)
	assert.Equal(t, "claude", g.Name())
}

func TestNewOpenAIRequiresAPIKey(t *testing.T) {
	cfg := openAITestConfig()
	cfg.APIKey = ""

	_, err := NewOpenAI(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewOpenAIName(t *testing.T) {
	g, err := NewOpenAI(openAITestConfig())

	require.NoError(t, err)
	assert.Equal(t, "openai", g.Name())
}

func TestClaudeCompleteRejectsEmptyPrompt(t *testing.T) {
	g, err := NewClaude(claudeTestConfig())
	require.NoError(t, err)

	// Validation failures are rejected before any network call.
	_, err = g.Complete(context.Background(), "system", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrValidation))
	assert.False(t, apierr.IsRetryable(err))
}

func TestOpenAICompleteRejectsEmptyPrompt(t *testing.T) {
	g, err := NewOpenAI(openAITestConfig())
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrValidation))
}
