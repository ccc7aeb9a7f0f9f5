package slider_test

import (
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/closer"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScrollSource struct {
	mu     sync.Mutex
	fn     func(slider.ScrollEvent)
	closed bool
}

func (s *fakeScrollSource) SubscribeScroll(fn func(slider.ScrollEvent)) io.Closer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fn = fn

	return closer.CustomCloser(func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.closed = true
		s.fn = nil

		return nil
	})
}

func (s *fakeScrollSource) emit(ev slider.ScrollEvent) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()

	if fn != nil {
		fn(ev)
	}
}

func (s *fakeScrollSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func TestReplayIntro_EmitsFreshReveal(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())

	h.ctrl.ReplayIntro(4)

	frame := h.surface.Last(t)
	assert.Equal(t, slider.PhaseIntro, frame.Phase)
	assert.Equal(t, 1, frame.To)
	assert.Equal(t, 0, frame.Index, "replaying does not navigate")
	require.NotNil(t, frame.Intro)
	assert.Len(t, frame.Intro.Steps, h.ctrl.Heading(1).Prepare().Len())
	assert.Equal(t, 30*time.Millisecond, frame.Intro.Steps[1].Delay)
}

func TestReplayIntro_SupersedesPendingRevealOfSameSlide(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())

	h.ctrl.Next()
	require.Equal(t, 1, h.clock.Pending())

	h.ctrl.ReplayIntro(1)
	count := h.surface.Count()

	assert.Zero(t, h.clock.Pending())

	h.clock.Advance(slider.DefaultIntroDelay)
	assert.Equal(t, count, h.surface.Count())
}

func TestReplayIntro_KeepsPendingRevealOfOtherSlide(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())

	h.ctrl.Next()
	h.ctrl.ReplayIntro(2)

	assert.Equal(t, 2, h.surface.Last(t).To)

	h.clock.Advance(slider.DefaultIntroDelay)

	frame := h.surface.Last(t)
	assert.Equal(t, slider.PhaseIntro, frame.Phase)
	assert.Equal(t, 1, frame.To)
}

func TestReplayIntro_ReducedIsInstant(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay(),
		slider.WithMotionPreference(slider.StaticMotion(true)))

	h.ctrl.ReplayIntro(0)

	frame := h.surface.Last(t)
	require.NotNil(t, frame.Intro)
	assert.True(t, frame.Intro.Reduced)
	assert.Zero(t, frame.Intro.Total())
}

func TestScroll_EmitsParallaxOffset(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())

	tests := []struct {
		slide    int
		progress float64
		want     slider.Parallax
	}{
		{0, 0.5, slider.Parallax{Slide: 0, Progress: 0.5, Y: 100}},
		{-1, 1.7, slider.Parallax{Slide: 2, Progress: 1, Y: slider.ParallaxDistance}},
		{1, -0.2, slider.Parallax{Slide: 1, Progress: 0, Y: 0}},
		{1, math.NaN(), slider.Parallax{Slide: 1, Progress: 0, Y: 0}},
	}

	for _, tt := range tests {
		h.ctrl.Scroll(tt.slide, tt.progress)

		frame := h.surface.Last(t)
		assert.Equal(t, slider.PhaseParallax, frame.Phase)
		assert.Nil(t, frame.Intro)
		require.NotNil(t, frame.Parallax)
		assert.Equal(t, tt.want.Slide, frame.Parallax.Slide)
		assert.InDelta(t, tt.want.Progress, frame.Parallax.Progress, 1e-9)
		assert.InDelta(t, tt.want.Y, frame.Parallax.Y, 1e-9)
	}

	assert.Equal(t, slider.CycleState{}, h.ctrl.State())
}

func TestScroll_AbsentUnderReducedMotion(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay(),
		slider.WithMotionPreference(slider.StaticMotion(true)))

	count := h.surface.Count()

	h.ctrl.Scroll(0, 0.5)
	h.ctrl.Scroll(1, 1)

	assert.Equal(t, count, h.surface.Count())
}

func TestScrollAndReplay_NoOpAfterClose(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())
	require.NoError(t, h.ctrl.Close())

	count := h.surface.Count()

	h.ctrl.Scroll(0, 0.5)
	h.ctrl.ReplayIntro(1)

	assert.Equal(t, count, h.surface.Count())
}

func TestBindScroll(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, noAutoplay())
	src := &fakeScrollSource{}

	require.NoError(t, h.ctrl.BindScroll(src))
	require.NoError(t, h.ctrl.BindScroll(nil))

	count := h.surface.Count()

	src.emit(slider.ScrollEvent{Slide: 1, Progress: 0.25, Entered: true})

	frames := h.surface.Frames()[count:]
	require.Len(t, frames, 2)
	assert.Equal(t, slider.PhaseIntro, frames[0].Phase)
	assert.Equal(t, 1, frames[0].To)
	assert.Equal(t, slider.PhaseParallax, frames[1].Phase)
	assert.InDelta(t, 50.0, frames[1].Parallax.Y, 1e-9)

	src.emit(slider.ScrollEvent{Slide: 1, Progress: 0.5})
	assert.Equal(t, slider.PhaseParallax, h.surface.Last(t).Phase)
	assert.Equal(t, count+3, h.surface.Count())

	require.NoError(t, h.ctrl.Close())
	assert.True(t, src.Closed())

	src.emit(slider.ScrollEvent{Slide: 2, Progress: 1, Entered: true})
	assert.Equal(t, count+3, h.surface.Count())
}
