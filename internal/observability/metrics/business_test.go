package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("claude", "blog_post", "success"))

	RecordGeneration("claude", "blog_post", true, 2*time.Second)

	after := testutil.ToFloat64(GenerationsTotal.WithLabelValues("claude", "blog_post", "success"))
	assert.Equal(t, before+1, after)
}

func TestRecordGenerationFailureStatus(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("openai", "social_media", "failure"))

	RecordGeneration("openai", "social_media", false, time.Second)

	after := testutil.ToFloat64(GenerationsTotal.WithLabelValues("openai", "social_media", "failure"))
	assert.Equal(t, before+1, after)
}

func TestRecordGenerationTokens(t *testing.T) {
	beforeIn := testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("claude", "input"))
	beforeOut := testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("claude", "output"))

	RecordGenerationTokens("claude", 120, 340)

	assert.Equal(t, beforeIn+120, testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("claude", "input")))
	assert.Equal(t, beforeOut+340, testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("claude", "output")))
}

func TestRecordGenerationTokensIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("openai", "input"))

	RecordGenerationTokens("openai", 0, 0)

	assert.Equal(t, before, testutil.ToFloat64(GenerationTokensTotal.WithLabelValues("openai", "input")))
}

func TestRecordTaskRun(t *testing.T) {
	before := testutil.ToFloat64(TaskRunsTotal.WithLabelValues("daily_content", "failure"))

	RecordTaskRun("daily_content", false, 30*time.Second)

	after := testutil.ToFloat64(TaskRunsTotal.WithLabelValues("daily_content", "failure"))
	assert.Equal(t, before+1, after)
}

func TestUpdateInventoryGauges(t *testing.T) {
	UpdateContentTotal("blog_post", 42)
	UpdateKeywordsTotal(150)
	UpdateProductsTotal(7)

	assert.Equal(t, 42.0, testutil.ToFloat64(ContentPiecesTotal.WithLabelValues("blog_post")))
	assert.Equal(t, 150.0, testutil.ToFloat64(KeywordsTrackedTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(ProductsTotal))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("claude-api", gobreaker.StateClosed)
	assert.Equal(t, 0.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("claude-api")))

	SetCircuitBreakerState("claude-api", gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("claude-api")))

	SetCircuitBreakerState("claude-api", gobreaker.StateOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("claude-api")))
}
