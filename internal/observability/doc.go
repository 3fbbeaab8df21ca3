// Package observability provides the pipeline's observability
// infrastructure: structured logging, Prometheus metrics, OpenTelemetry
// tracing, and SLO tracking.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracing around task runs
//   - slo: Service level objective gauges
//
// Example usage:
//
//	import (
//	    "contentforge/internal/observability/logging"
//	    "contentforge/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("worker started")
//
//	    metrics.RecordGeneration("blog_post", "claude", true, 12.4)
//	}
package observability
