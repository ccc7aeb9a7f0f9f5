package timeline

import (
	"fmt"

	"github.com/amp-labs/hero-slider/heading"
)

// HeadingTarget names one unit of a slide's heading.
func HeadingTarget(id string, seq int) string {
	return fmt.Sprintf("heading:%s:%d", id, seq)
}

// Stagger turns a heading reveal into a timeline: each unit rises 32px
// while fading in, starting at its own delay. A reduced reveal yields
// zero-length tweens, so the first tick already shows the end state.
func Stagger(id string, reveal heading.Reveal) Timeline {
	var tl Timeline

	for _, step := range reveal.Steps {
		target := HeadingTarget(id, step.Unit.Seq)

		tl.Add(
			Tween{
				Target: target, Property: Opacity,
				From: 0, To: 1,
				Start: step.Delay, Duration: step.Duration, Ease: Power3Out,
			},
			Tween{
				Target: target, Property: Y,
				From: 32, To: 0,
				Start: step.Delay, Duration: step.Duration, Ease: Power3Out,
			},
		)
	}

	return tl
}
