package slider

import "github.com/amp-labs/hero-slider/heading"

// Phase says why a frame was emitted.
type Phase int

const (
	// PhaseIdle is a settled state: exactly one slide is visible.
	PhaseIdle Phase = iota
	// PhaseTransition marks the start of an animated handoff. Both the
	// outgoing and incoming slides are visible.
	PhaseTransition
	// PhaseIntro carries the heading reveal for the entering slide.
	PhaseIntro
	// PhaseParallax carries a scroll-driven heading offset. It is never
	// emitted under reduced motion.
	PhaseParallax
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransition:
		return "transition"
	case PhaseIntro:
		return "intro"
	case PhaseParallax:
		return "parallax"
	default:
		return "unknown"
	}
}

// Frame is the state handed to the rendering surface. Frames may be
// delivered from different goroutines; Seq increases with every frame so a
// surface can ignore one that arrives after a newer frame.
type Frame struct {
	Seq   uint64
	Phase Phase
	// Index is the committed current index.
	Index int
	// From and To are the endpoints of the transition in flight, or both
	// equal Index when nothing is moving.
	From int
	To   int
	// Transitioning is true while an animated transition is in flight.
	Transitioning bool
	// Visible has one entry per slide.
	Visible []bool
	Reduced bool
	// Intro is set on PhaseIntro frames. It reveals the heading of slide To.
	Intro *heading.Reveal
	// Parallax is set on PhaseParallax frames.
	Parallax *Parallax
}

// Parallax is the heading offset of one slide at a scroll position.
type Parallax struct {
	Slide    int
	Progress float64
	// Y is the heading's downward offset, Progress * ParallaxDistance.
	Y float64
}

// Surface paints frames. It must not block for long: it is called on the
// goroutine that changed the state.
type Surface interface {
	Render(f Frame)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(Frame)

func (f SurfaceFunc) Render(fr Frame) {
	f(fr)
}

type nopSurface struct{}

func (nopSurface) Render(Frame) {}

// Change describes a committed index change.
type Change struct {
	From  int
	To    int
	Slide Slide
}
