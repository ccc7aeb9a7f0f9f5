package spans

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerKey contextKey = "tracer"

// WithTracer stores the tracer that Start and StartValErr use. Without one,
// the wrapped function still runs but no span is recorded.
//
//	ctx = spans.WithTracer(ctx, otel.Tracer("heroslide"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, tracerKey, tracer)
}

// TracerFromContext returns the tracer stored by WithTracer.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) { //nolint:ireturn
	if ctx == nil {
		return nil, false
	}

	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)

	return tracer, ok && tracer != nil
}
