package spans

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a span before it is started.
type Option func(*runner)

// WithAttribute adds a start-time attribute to the span.
func WithAttribute(key attribute.Key, value attribute.Value) Option {
	return func(r *runner) {
		r.sso = append(r.sso, trace.WithAttributes(attribute.KeyValue{Key: key, Value: value}))
	}
}

// WithSpanKind sets the span kind. The default is SpanKindInternal.
func WithSpanKind(kind trace.SpanKind) Option {
	return func(r *runner) {
		r.spanKind = kind
	}
}

// WithErrorMessage prefixes the error status description.
func WithErrorMessage(description string) Option {
	return func(r *runner) {
		r.failure = description
	}
}

// WithAutoEnd controls whether the span ends when the wrapped function
// returns. The default is true. With false the caller owns the span and
// finishes it with End; no status is set on return.
//
//	spans.Start(ctx, "slider.transition", spans.WithAutoEnd(false)).
//		Enter(func(_ context.Context, span trace.Span) { inflight = span })
func WithAutoEnd(autoEnd bool) Option {
	return func(r *runner) {
		r.autoEnd = autoEnd
	}
}
