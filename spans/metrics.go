package spans

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// spanWithoutTracer counts spans skipped because WithTracer was never
// called on the context.
var spanWithoutTracer = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "spans_without_tracer_total",
	Help: "Span executions without a tracer in context",
}, []string{"span_name"})
