package slider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeInstant   = "instant"
	outcomeCancelled = "cancelled"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "slider_transitions_total",
		Help: "Slide transitions committed or cancelled, by outcome",
	}, []string{"slider", "outcome"})

	gotoDropped = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "slider_goto_dropped_total",
		Help: "Navigation requests dropped because a transition was in flight",
	}, []string{"slider"})

	autoplayTicks = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "slider_autoplay_ticks_total",
		Help: "Autoplay timer firings",
	}, []string{"slider"})

	runnerFailures = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "slider_runner_failures_total",
		Help: "Transition runner errors and panics swallowed at the controller boundary",
	}, []string{"slider"})

	introReplays = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "slider_intro_replays_total",
		Help: "Heading reveals replayed when a slide scrolled into view",
	}, []string{"slider"})

	transitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "slider_transition_duration_seconds",
		Help:    "Time from transition start to commit",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 5},
	}, []string{"slider"})

	mountedControllers = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "slider_mounted_controllers",
		Help: "Controllers currently mounted",
	}, []string{"slider"})
)
