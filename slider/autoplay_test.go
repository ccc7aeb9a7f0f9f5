package slider_test

import (
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/slider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoplay_AdvancesEveryInterval(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{autoComplete: true}, autoplayEvery(time.Second))

	var seen []int

	h.ctrl.Subscribe(func(c slider.Change) {
		seen = append(seen, c.To)
	})

	h.clock.Advance(time.Second)
	h.clock.Advance(time.Second)
	h.clock.Advance(time.Second)

	assert.Equal(t, []int{1, 2, 0}, seen)
	assert.True(t, h.ctrl.State().AutoplayEnabled)
}

func TestAutoplay_ManualNavigationRestartsCountdown(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{autoComplete: true}, autoplayEvery(time.Second))

	h.clock.Advance(900 * time.Millisecond)
	h.ctrl.Next()
	require.Equal(t, 1, h.ctrl.State().CurrentIndex)

	h.clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 1, h.ctrl.State().CurrentIndex, "no autoplay advance before a full interval")

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, 2, h.ctrl.State().CurrentIndex)
}

func TestAutoplay_TickDuringTransitionWaits(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{}, autoplayEvery(time.Second))

	h.clock.Advance(time.Second)
	require.Len(t, h.runner.Calls(), 1)

	h.clock.Advance(time.Second)
	require.Len(t, h.runner.Calls(), 1, "tick while in flight is dropped")

	h.runner.Last(t).done(nil)
	assert.Equal(t, 1, h.ctrl.State().CurrentIndex)

	h.clock.Advance(999 * time.Millisecond)
	assert.Len(t, h.runner.Calls(), 1)

	h.clock.Advance(time.Millisecond)
	assert.Len(t, h.runner.Calls(), 2)
}

func TestSetAutoplay(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{autoComplete: true}, autoplayEvery(time.Second))

	h.ctrl.SetAutoplay(false)
	assert.False(t, h.ctrl.State().AutoplayEnabled)

	h.clock.Advance(5 * time.Second)
	assert.Equal(t, 0, h.ctrl.State().CurrentIndex)
	assert.Zero(t, h.clock.Pending())

	h.ctrl.SetAutoplay(true)
	h.clock.Advance(time.Second)
	assert.Equal(t, 1, h.ctrl.State().CurrentIndex)

	h.clock.Advance(500 * time.Millisecond)
	h.ctrl.SetAutoplay(true)
	h.clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 2, h.ctrl.State().CurrentIndex, "re-enabling keeps the running countdown")
}

func TestAutoplay_DisabledAtMount(t *testing.T) {
	t.Parallel()

	h := mount(t, &fakeRunner{autoComplete: true}, noAutoplay())

	h.clock.Advance(time.Minute)

	assert.Equal(t, slider.CycleState{}, h.ctrl.State())
	assert.Empty(t, h.runner.Calls())
}
