package slider

import (
	"context"

	"github.com/amp-labs/hero-slider/spans"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startTransitionSpan opens the span covering one animated transition.
// The controller ends it through endTransitionSpan on commit or unmount.
func startTransitionSpan(ctx context.Context, name string, t Transition) trace.Span {
	var span trace.Span

	spans.Start(ctx, "slider.transition",
		spans.WithAutoEnd(false),
		spans.WithAttribute("slider", attribute.StringValue(name)),
		spans.WithAttribute("from", attribute.IntValue(t.From)),
		spans.WithAttribute("to", attribute.IntValue(t.To)),
		spans.WithAttribute("from_slide", attribute.StringValue(t.FromSlide.ID)),
		spans.WithAttribute("to_slide", attribute.StringValue(t.ToSlide.ID)),
	).Enter(func(_ context.Context, s trace.Span) {
		span = s
	})

	return span
}

func endTransitionSpan(span trace.Span, outcome string, err error) {
	spans.End(span, err, attribute.String("outcome", outcome))
}
