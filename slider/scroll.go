package slider

import (
	"io"
	"math"
)

// ParallaxDistance is how far a heading drifts over its slide's full
// scroll range.
const ParallaxDistance = 200.0

// ScrollEvent is one observation from a ScrollSource.
type ScrollEvent struct {
	Slide int
	// Progress runs from 0, when the slide's top meets the bottom of the
	// viewport, to 1, when its bottom leaves the top.
	Progress float64
	// Entered marks the slide's content crossing into view.
	Entered bool
}

// ScrollSource delivers scroll events until the returned closer is closed.
type ScrollSource interface {
	SubscribeScroll(fn func(ScrollEvent)) io.Closer
}

// BindScroll feeds src into ReplayIntro and Scroll. The subscription is
// bound to the controller and released on unmount.
func (c *Controller) BindScroll(src ScrollSource) error {
	if src == nil {
		return nil
	}

	return c.Bind(src.SubscribeScroll(c.onScroll))
}

func (c *Controller) onScroll(ev ScrollEvent) {
	if ev.Entered {
		c.ReplayIntro(ev.Slide)
	}

	c.Scroll(ev.Slide, ev.Progress)
}

// ReplayIntro reveals the heading of slide i again. A reveal of the same
// slide still waiting on its delay is superseded. Under reduced motion the
// reveal is instant.
func (c *Controller) ReplayIntro(i int) {
	c.mu.Lock()

	if !c.alive.Load() {
		c.mu.Unlock()

		return
	}

	slide := Normalize(i, len(c.slides))

	if c.intro != nil && c.introSlide == slide {
		c.stopIntroLocked()
	}

	reveal := c.headings[slide].Reveal(c.reduced, c.stagger)
	frame := c.frameLocked(PhaseIntro, &reveal)
	frame.To = slide
	c.mu.Unlock()

	introReplays.WithLabelValues(c.name).Inc()

	c.apply(effects{frames: []Frame{frame}})
}

// Scroll reports the scroll progress of slide i, clamped to [0, 1], and
// emits the heading's parallax offset. It does nothing under reduced
// motion.
func (c *Controller) Scroll(i int, progress float64) {
	if c.reduced {
		return
	}

	c.mu.Lock()

	if !c.alive.Load() {
		c.mu.Unlock()

		return
	}

	p := clampProgress(progress)
	frame := c.frameLocked(PhaseParallax, nil)
	frame.Parallax = &Parallax{
		Slide:    Normalize(i, len(c.slides)),
		Progress: p,
		Y:        p * ParallaxDistance,
	}
	c.mu.Unlock()

	c.apply(effects{frames: []Frame{frame}})
}

func clampProgress(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}

	return math.Min(p, 1)
}
