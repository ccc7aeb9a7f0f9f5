package slider_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/clock"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

func threeSlides() []slider.Slide {
	return []slider.Slide{
		{ID: "a", Title: "UI / UX\nDESIGN", Media: slider.Media{Video: "/a.mp4"}},
		{ID: "b", Title: "PRODUCT\nDESIGN", Media: slider.Media{Video: "/b.mp4"}},
		{ID: "c", Title: "BRAND", Media: slider.Media{Video: "/c.mp4"}},
	}
}

type fakeHandle struct {
	cancelled atomic.Int32
}

func (h *fakeHandle) Cancel() {
	h.cancelled.Inc()
}

type runCall struct {
	transition slider.Transition
	done       func(error)
	handle     *fakeHandle
}

// fakeRunner records every Run. With autoComplete set it completes each transition
// before Run returns; otherwise the test calls done itself.
type fakeRunner struct {
	mu           sync.Mutex
	autoComplete bool
	err          error
	panicWith    any
	calls        []runCall
	media        []string
}

func (r *fakeRunner) Run(_ context.Context, t slider.Transition, done func(error)) (slider.Handle, error) { //nolint:ireturn
	if r.panicWith != nil {
		panic(r.panicWith)
	}

	h := &fakeHandle{}

	r.mu.Lock()
	r.calls = append(r.calls, runCall{transition: t, done: done, handle: h})
	r.mu.Unlock()

	if r.autoComplete {
		done(nil)
	}

	return h, r.err
}

func (r *fakeRunner) StartMedia(_ context.Context, s slider.Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.media = append(r.media, s.ID)
}

func (r *fakeRunner) Calls() []runCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]runCall(nil), r.calls...)
}

func (r *fakeRunner) Last(t *testing.T) runCall {
	t.Helper()

	calls := r.Calls()
	require.NotEmpty(t, calls)

	return calls[len(calls)-1]
}

func (r *fakeRunner) Media() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.media...)
}

type recordingSurface struct {
	mu     sync.Mutex
	frames []slider.Frame
}

func (s *recordingSurface) Render(f slider.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = append(s.frames, f)
}

func (s *recordingSurface) Frames() []slider.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]slider.Frame(nil), s.frames...)
}

func (s *recordingSurface) Last(t *testing.T) slider.Frame {
	t.Helper()

	frames := s.Frames()
	require.NotEmpty(t, frames)

	return frames[len(frames)-1]
}

func (s *recordingSurface) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.frames)
}

type harness struct {
	ctrl    *slider.Controller
	clock   *clock.Manual
	runner  *fakeRunner
	surface *recordingSurface
	cancel  context.CancelFunc
}

// mount wires a controller to a manual clock, a fake runner and a recording
// surface. The mount context is detached from t.Context so that unmounting
// happens in Cleanup rather than on a background goroutine.
func mount(t *testing.T, runner *fakeRunner, cfg slider.Config, opts ...slider.Option) *harness {
	t.Helper()

	ctx, cancel := context.WithCancel(logger.WithBase(context.Background(), slogt.New(t))) //nolint:usetesting

	h := &harness{
		clock:   clock.NewManual(epoch),
		runner:  runner,
		surface: &recordingSurface{},
		cancel:  cancel,
	}

	opts = append([]slider.Option{
		slider.WithConfig(cfg),
		slider.WithClock(h.clock),
		slider.WithSurface(h.surface),
		slider.WithName(t.Name()),
	}, opts...)

	ctrl, err := slider.Mount(ctx, threeSlides(), runner, opts...)
	require.NoError(t, err)

	h.ctrl = ctrl

	t.Cleanup(func() {
		assert.NoError(t, ctrl.Close())
		cancel()
	})

	return h
}

func noAutoplay() slider.Config {
	return slider.Config{Autoplay: false, Interval: slider.DefaultInterval}
}

func autoplayEvery(d time.Duration) slider.Config {
	return slider.Config{Autoplay: true, Interval: d}
}
