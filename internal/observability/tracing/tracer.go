package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"go.opentelemetry.io/otel/sdk/resource"
)

// tracer is the package-level tracer for pipeline spans.
var tracer = otel.Tracer("contentforge")

// GetTracer returns the tracer used to create spans around pipeline work.
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs a global tracer provider identified as this service.
// The returned shutdown function flushes any pending spans and must be
// called before the process exits.
func Setup(serviceName string) func(context.Context) error {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}
