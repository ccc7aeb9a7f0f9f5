// Package spans runs functions inside OpenTelemetry spans. The tracer comes
// from the context (WithTracer); errors and panics are recorded on the span.
package spans

import (
	"context"
	"fmt"
	"runtime/debug"

	errors2 "github.com/amp-labs/hero-slider/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type runner struct {
	name     string
	failure  string
	autoEnd  bool
	spanKind trace.SpanKind
	sso      []trace.SpanStartOption
}

func newRunner(name string, opts []Option) *runner {
	r := &runner{
		name:     name,
		autoEnd:  true,
		spanKind: trace.SpanKindInternal,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// StartOrchestrator runs a function that returns nothing. Create via Start.
type StartOrchestrator struct {
	ctx  context.Context //nolint:containedctx
	name string
	opts []Option
}

// Start prepares a span named name. Nothing happens until Enter.
func Start(ctx context.Context, name string, opts ...Option) *StartOrchestrator {
	return &StartOrchestrator{ctx: ctx, name: name, opts: opts}
}

// Enter runs f inside the span. A panic in f is recorded and re-raised.
func (o *StartOrchestrator) Enter(f func(ctx context.Context, span trace.Span)) {
	if f == nil {
		return
	}

	_, _ = invoke(o.ctx, o.name, func(ctx context.Context, span trace.Span) (struct{}, error) {
		f(ctx, span)

		return struct{}{}, nil
	}, o.opts)
}

// StartValueErrorOrchestrator runs a function returning a value and an
// error. Create via StartValErr.
type StartValueErrorOrchestrator[T any] struct {
	ctx  context.Context //nolint:containedctx
	name string
	opts []Option
}

// StartValErr prepares a span for a fallible operation producing a T.
//
//	slides, err := spans.StartValErr[[]slider.Slide](ctx, "deck.load").
//		Enter(func(ctx context.Context, _ trace.Span) ([]slider.Slide, error) {
//			return parse(ctx, f)
//		})
func StartValErr[T any](ctx context.Context, name string, opts ...Option) *StartValueErrorOrchestrator[T] {
	return &StartValueErrorOrchestrator[T]{ctx: ctx, name: name, opts: opts}
}

// Enter runs f inside the span. A returned error is recorded and the span
// status set to Error.
func (o *StartValueErrorOrchestrator[T]) Enter(f func(ctx context.Context, span trace.Span) (T, error)) (T, error) {
	return invoke(o.ctx, o.name, f, o.opts)
}

// End finishes a span started with WithAutoEnd(false). A nil span is
// ignored.
func End(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}

	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "ok")
	}

	span.End()
}

func invoke[T any](
	ctx context.Context, name string,
	call func(ctx context.Context, span trace.Span) (T, error), opts []Option,
) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	r := newRunner(name, opts)

	tracer, found := TracerFromContext(ctx)
	if !found {
		spanWithoutTracer.WithLabelValues(name).Inc()

		// A caller that ends the span itself must not end the parent.
		if !r.autoEnd {
			return call(ctx, trace.SpanFromContext(context.Background()))
		}

		return call(ctx, trace.SpanFromContext(ctx))
	}

	return run(ctx, tracer, r, call)
}

func run[T any](
	ctx context.Context, tracer trace.Tracer, r *runner,
	call func(ctx context.Context, span trace.Span) (T, error),
) (val T, err error) {
	sso := append(append([]trace.SpanStartOption(nil), r.sso...), trace.WithSpanKind(r.spanKind))

	ctx, span := tracer.Start(ctx, r.name, sso...) //nolint:spancheck

	defer func() {
		if recovered := recover(); recovered != nil {
			span.SetAttributes(attribute.Bool("panic", true))
			r.setError(span, errors2.FromPanic(recovered, debug.Stack()))

			if r.autoEnd {
				span.End()
			}

			panic(recovered)
		}

		if r.autoEnd {
			span.End()
		}
	}()

	val, err = call(ctx, span)

	switch {
	case !r.autoEnd:
	case err != nil:
		r.setError(span, err)
	default:
		span.SetStatus(codes.Ok, "ok")
	}

	return val, err
}

func (r *runner) setError(span trace.Span, err error) {
	span.RecordError(err)

	if r.failure != "" {
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", r.failure, err.Error()))
	} else {
		span.SetStatus(codes.Error, err.Error())
	}
}
