// Package tracing provides OpenTelemetry tracing integration.
//
// Pipeline task runs and generation calls are wrapped in spans created
// from the package tracer. Setup installs a global tracer provider; an
// exporter can be attached there when one is needed.
//
// Example usage:
//
//	import "contentforge/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Setup("contentforge")
//	    defer shutdown(context.Background())
//	}
//
//	func runTask(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "task.daily_content")
//	    defer span.End()
//	    // ... run the task ...
//	}
package tracing
