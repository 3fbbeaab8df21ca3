// Package metrics defines the Prometheus metric vectors shared across the
// pipeline and thin helpers for recording into them.
//
// Metrics are registered once at package init through promauto and exposed
// by the worker's metrics server. Components record through the helper
// functions rather than touching the vectors directly, so label conventions
// stay in one place.
//
// Metric families:
//   - content_generations_*: AI generation calls, durations, token usage
//   - retry_* / rate_limit_* / circuit_breaker_*: resilience behavior
//   - serp_requests_*: search ranking data collection
//   - task_*: scheduled pipeline task runs
//   - content_pieces_total, keywords_tracked_total, products_total: inventory
//   - db_*: database query performance and connection pool state
package metrics
