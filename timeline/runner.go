// Package timeline is a small tween engine: eased property animations laid
// out on a timeline and sampled frame by frame against a clock. Runner
// plugs it into the slider as its transition runner.
package timeline

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/amp-labs/hero-slider/bgworker"
	"github.com/amp-labs/hero-slider/clock"
	errors2 "github.com/amp-labs/hero-slider/errors"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/slider"
)

// MediaPlayer starts a slide's media. Failures are cosmetic: they are
// logged and counted, never propagated.
type MediaPlayer interface {
	Play(ctx context.Context, slideID string, m slider.Media) error
}

// MediaPlayerFunc adapts a function to MediaPlayer.
type MediaPlayerFunc func(ctx context.Context, slideID string, m slider.Media) error

func (f MediaPlayerFunc) Play(ctx context.Context, slideID string, m slider.Media) error {
	return f(ctx, slideID, m)
}

// Runner plays CrossFade timelines for slide transitions and starts the
// incoming slide's media on a worker pool.
type Runner struct {
	clock         clock.Clock
	pool          *bgworker.Pool
	player        MediaPlayer
	sink          Sink
	frameInterval time.Duration
}

var (
	_ slider.TransitionRunner = (*Runner)(nil)
	_ slider.MediaStarter     = (*Runner)(nil)
)

// RunnerOption configures NewRunner.
type RunnerOption func(*Runner)

// WithClock drives playbacks from c instead of the real clock.
func WithClock(c clock.Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithMediaPlayer sets the player used to start slide media.
func WithMediaPlayer(p MediaPlayer) RunnerOption {
	return func(r *Runner) {
		r.player = p
	}
}

// WithSink receives every tick of every transition.
func WithSink(s Sink) RunnerOption {
	return func(r *Runner) {
		r.sink = s
	}
}

// WithFrameInterval sets the sampling interval.
func WithFrameInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.frameInterval = d
		}
	}
}

// NewRunner creates a Runner. Media is started on pool; with a nil pool it
// is started inline.
func NewRunner(pool *bgworker.Pool, opts ...RunnerOption) *Runner {
	r := &Runner{
		clock:         clock.Real(),
		pool:          pool,
		frameInterval: DefaultFrameInterval,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run starts the incoming slide's media and plays the crossfade. It never
// fails; the returned Playback is the transition's handle.
func (r *Runner) Run(ctx context.Context, t slider.Transition, done func(error)) (slider.Handle, error) { //nolint:ireturn
	r.StartMedia(ctx, t.ToSlide)

	logger.Get(ctx).Debug("playing crossfade", "from", t.FromSlide.ID, "to", t.ToSlide.ID)

	return Play(r.clock, CrossFade(t.FromSlide.ID, t.ToSlide.ID), r.frameInterval, r.sink, done), nil
}

// StartMedia starts s's video, if it has one. It returns immediately.
func (r *Runner) StartMedia(ctx context.Context, s slider.Slide) {
	if r.player == nil || s.Media.Video == "" {
		return
	}

	if r.pool == nil {
		r.playMedia(ctx, s)

		return
	}

	if err := r.pool.Go(func() { r.playMedia(ctx, s) }); err != nil {
		mediaFailures.Inc()
		logger.Get(ctx).Warn("could not schedule media start", "slide", s.ID, "error", err)
	}
}

func (r *Runner) playMedia(ctx context.Context, s slider.Slide) {
	var err error

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = errors2.FromPanic(rec, debug.Stack())
			}
		}()

		err = r.player.Play(ctx, s.ID, s.Media)
	}()

	if err != nil {
		mediaFailures.Inc()
		logger.Get(ctx).Warn("media failed to start", "slide", s.ID, "video", s.Media.Video, "error", err)
	}
}
