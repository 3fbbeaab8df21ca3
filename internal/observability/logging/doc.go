// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Task-scoped loggers for scheduled pipeline runs
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "contentforge/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func runTask(ctx context.Context) {
//	    logger := logging.WithTask(logging.FromContext(ctx), "daily_content")
//	    logger.Info("task started")
//	}
package logging
