package metrics

import (
	"time"

	"github.com/sony/gobreaker"

	"contentforge/internal/observability/slo"
)

// RecordGeneration records the result of a content generation call.
// Status is "success" or "failure". The outcome also feeds the
// generation success ratio SLO gauge.
func RecordGeneration(provider, contentType string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	GenerationsTotal.WithLabelValues(provider, contentType, status).Inc()
	GenerationDuration.WithLabelValues(provider).Observe(duration.Seconds())
	slo.RecordGenerationOutcome(success)
}

// RecordGenerationTokens records token consumption for a generation call.
func RecordGenerationTokens(provider string, inputTokens, outputTokens int64) {
	if inputTokens > 0 {
		GenerationTokensTotal.WithLabelValues(provider, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		GenerationTokensTotal.WithLabelValues(provider, "output").Add(float64(outputTokens))
	}
}

// RecordGenerationWords records the word count of a generated piece.
func RecordGenerationWords(words int) {
	GenerationWordCount.Observe(float64(words))
}

// RecordRetryAttempt records a single retry attempt for an operation.
func RecordRetryAttempt(operation string) {
	RetryAttemptsTotal.WithLabelValues(operation).Inc()
}

// RecordRetryExhausted records an operation that failed after all retries.
func RecordRetryExhausted(operation string) {
	RetryExhaustedTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimitWait records a call delayed by the outbound rate limiter.
func RecordRateLimitWait(provider string) {
	RateLimitWaits.WithLabelValues(provider).Inc()
}

// RecordSERPRequest records a search result page request.
func RecordSERPRequest(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SERPRequestsTotal.WithLabelValues(status).Inc()
	SERPRequestDuration.Observe(duration.Seconds())
}

// RecordTaskRun records a scheduled task run with its outcome.
func RecordTaskRun(task string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	TaskRunsTotal.WithLabelValues(task, status).Inc()
	TaskDuration.WithLabelValues(task).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "insert_content", "list_keywords").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateContentTotal updates the stored content gauge for a content type.
// This gauge should be refreshed periodically from the database.
func UpdateContentTotal(contentType string, count int) {
	ContentPiecesTotal.WithLabelValues(contentType).Set(float64(count))
}

// UpdateKeywordsTotal updates the tracked keyword count gauge.
func UpdateKeywordsTotal(count int) {
	KeywordsTrackedTotal.Set(float64(count))
}

// UpdateProductsTotal updates the catalog product count gauge.
func UpdateProductsTotal(count int) {
	ProductsTotal.Set(float64(count))
}

// SetCircuitBreakerState reports a breaker's current state as a gauge value.
func SetCircuitBreakerState(name string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(v)
}
