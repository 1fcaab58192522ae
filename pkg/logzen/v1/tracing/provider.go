package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TracerProvider defines the interface for accessing the facility's tracer provider.
// Spans started from its tracers flow into log records through the context passed
// to LogCtx / Emit, which attaches trace_id and span_id.
type TracerProvider interface {
	// GetTracer returns a Tracer instance with the specified name and options.
	GetTracer(name string, opts ...trace.TracerOption) trace.Tracer

	// Shutdown gracefully shuts down the tracer provider, flushing any buffered spans.
	// Implementations should treat shutdown of a NoOp provider as a no-op.
	Shutdown(ctx context.Context) error
}
