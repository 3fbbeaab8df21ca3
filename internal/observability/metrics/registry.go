// Package metrics provides centralized Prometheus metrics for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation metrics track AI content generation operations
var (
	// GenerationsTotal counts generation calls by provider, content type, and status
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_generations_total",
			Help: "Total number of content generation calls",
		},
		[]string{"provider", "content_type", "status"},
	)

	// GenerationDuration measures end-to-end generation call duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_generation_duration_seconds",
			Help:    "Time taken to generate a piece of content",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"provider"},
	)

	// GenerationTokensTotal counts tokens consumed by direction (input/output)
	GenerationTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_generation_tokens_total",
			Help: "Total tokens consumed by generation calls",
		},
		[]string{"provider", "direction"},
	)

	// GenerationWordCount measures generated content length in words
	GenerationWordCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_generation_words",
			Help:    "Word count distribution of generated content",
			Buckets: []float64{100, 200, 400, 800, 1200, 1600, 2400, 3200},
		},
	)
)

// Resilience metrics track retry and circuit breaker behavior
var (
	// RetryAttemptsTotal counts retry attempts per operation
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts",
		},
		[]string{"operation"},
	)

	// RetryExhaustedTotal counts operations that failed after all retries
	RetryExhaustedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_exhausted_total",
			Help: "Total number of operations that exhausted their retry budget",
		},
		[]string{"operation"},
	)

	// RateLimitWaits counts calls that had to wait on the outbound rate limiter
	RateLimitWaits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_waits_total",
			Help: "Total number of calls delayed by the outbound rate limiter",
		},
		[]string{"provider"},
	)

	// CircuitBreakerState reports the current breaker state (0 closed, 1 half-open, 2 open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// SERP metrics track search ranking data collection
var (
	// SERPRequestsTotal counts search result page requests by status
	SERPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serp_requests_total",
			Help: "Total number of search result page requests",
		},
		[]string{"status"},
	)

	// SERPRequestDuration measures search result page request duration
	SERPRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "serp_request_duration_seconds",
			Help:    "Time taken to fetch a search result page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Task metrics track scheduled pipeline task execution
var (
	// TaskRunsTotal counts scheduled task runs by task name and status
	TaskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_runs_total",
			Help: "Total number of scheduled task runs",
		},
		[]string{"task", "status"},
	)

	// TaskDuration measures scheduled task run duration
	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_duration_seconds",
			Help:    "Time taken by a scheduled task run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"task"},
	)
)

// Inventory metrics reflect current database state
var (
	// ContentPiecesTotal tracks stored content pieces by type
	ContentPiecesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_pieces_total",
			Help: "Total number of stored content pieces",
		},
		[]string{"content_type"},
	)

	// KeywordsTrackedTotal tracks the number of researched keywords
	KeywordsTrackedTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "keywords_tracked_total",
			Help: "Total number of keywords under tracking",
		},
	)

	// ProductsTotal tracks the number of catalog products
	ProductsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "products_total",
			Help: "Total number of products in the catalog",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
