package timeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeFinished  = "finished"
	outcomeCancelled = "cancelled"
)

var (
	playbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "timeline_playbacks_total",
		Help: "Timeline playbacks that ran to the end or were cancelled",
	}, []string{"outcome"})

	mediaFailures = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "timeline_media_failures_total",
		Help: "Slide media that failed to start",
	})
)
