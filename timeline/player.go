package timeline

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/amp-labs/hero-slider/clock"
	errors2 "github.com/amp-labs/hero-slider/errors"
	"github.com/amp-labs/hero-slider/logger"
	"go.uber.org/atomic"
)

// DefaultFrameInterval is roughly one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

const (
	stateRunning int32 = iota
	stateFinished
	stateCancelled
)

// Tick is one rendered frame of a playback.
type Tick struct {
	Elapsed time.Duration
	// Progress is Elapsed over the timeline's duration, in [0, 1].
	Progress float64
	Values   []Value
	// Final is set on the last tick, which always samples the end state.
	Final bool
}

// Sink receives ticks. It must not call Cancel on the playback that is
// delivering to it.
type Sink func(Tick)

// Playback is a running timeline. It satisfies slider.Handle.
type Playback struct {
	mu       sync.Mutex
	clock    clock.Clock
	timeline Timeline
	interval time.Duration
	sink     Sink
	done     func(error)
	start    time.Time
	timer    clock.Timer
	frames   int
	state    *atomic.Int32
}

// Play starts tl on clk, sampling it every frameInterval. The first tick is
// delivered as soon as the clock allows and the last one samples the end
// state exactly. done, if non-nil, is called once after the final tick and
// never after Cancel has returned.
func Play(clk clock.Clock, tl Timeline, frameInterval time.Duration, sink Sink, done func(error)) *Playback {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}

	if clk == nil {
		clk = clock.Real()
	}

	pb := &Playback{
		clock:    clk,
		timeline: tl,
		interval: frameInterval,
		sink:     sink,
		done:     done,
		start:    clk.Now(),
		state:    atomic.NewInt32(stateRunning),
	}

	pb.mu.Lock()
	pb.timer = clk.AfterFunc(0, pb.frame)
	pb.mu.Unlock()

	return pb
}

func (pb *Playback) frame() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.state.Load() != stateRunning {
		return
	}

	total := pb.timeline.Duration()
	elapsed := pb.clock.Now().Sub(pb.start)
	final := elapsed >= total

	if final {
		elapsed = total
	}

	pb.emit(elapsed, total, final)

	if !final {
		pb.timer = pb.clock.AfterFunc(pb.interval, pb.frame)

		return
	}

	pb.timer = nil
	pb.state.Store(stateFinished)
	playbacksTotal.WithLabelValues(outcomeFinished).Inc()

	if pb.done != nil {
		pb.done(nil)
	}
}

func (pb *Playback) emit(elapsed, total time.Duration, final bool) {
	pb.frames++

	if pb.sink == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("panic in timeline sink", "error", errors2.FromPanic(r, debug.Stack()))
		}
	}()

	progress := 1.0
	if total > 0 {
		progress = float64(elapsed) / float64(total)
	}

	pb.sink(Tick{
		Elapsed:  elapsed,
		Progress: progress,
		Values:   pb.timeline.Sample(elapsed),
		Final:    final,
	})
}

// Cancel stops the playback. No tick and no done call happens after Cancel
// returns. Cancelling a finished playback is a no-op.
func (pb *Playback) Cancel() {
	if pb.state.Load() != stateRunning {
		return
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	if !pb.state.CompareAndSwap(stateRunning, stateCancelled) {
		return
	}

	if pb.timer != nil {
		pb.timer.Stop()
		pb.timer = nil
	}

	playbacksTotal.WithLabelValues(outcomeCancelled).Inc()
}

// Finished reports whether the playback reached its end.
func (pb *Playback) Finished() bool {
	return pb.state.Load() == stateFinished
}

// Cancelled reports whether Cancel stopped the playback early.
func (pb *Playback) Cancelled() bool {
	return pb.state.Load() == stateCancelled
}

// Frames returns the number of ticks delivered so far.
func (pb *Playback) Frames() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	return pb.frames
}
