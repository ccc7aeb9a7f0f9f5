package timeline

import (
	"sort"
	"time"
)

// Property is an animatable property of a target.
type Property string

const (
	Opacity Property = "opacity"
	// Y is a vertical offset in pixels.
	Y Property = "y"
)

// Tween animates one property of one target between two values.
type Tween struct {
	Target   string
	Property Property
	From     float64
	To       float64
	// Start is the tween's offset from the start of its timeline.
	Start    time.Duration
	Duration time.Duration
	Ease     Ease
}

// End returns when the tween finishes, relative to its timeline.
func (tw Tween) End() time.Duration {
	return tw.Start + tw.Duration
}

// ValueAt returns the property value at timeline offset t. Before Start the
// value is From; at or after End it is To.
func (tw Tween) ValueAt(t time.Duration) float64 {
	switch {
	case t < tw.Start:
		return tw.From
	case t >= tw.End() || tw.Duration <= 0:
		return tw.To
	}

	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}

	p := float64(t-tw.Start) / float64(tw.Duration)

	return tw.From + (tw.To-tw.From)*ease(p)
}

// Value is one sampled property.
type Value struct {
	Target   string
	Property Property
	Value    float64
}

// Timeline is a set of tweens sharing one clock.
type Timeline struct {
	Tweens []Tween
}

// Add appends tweens and returns the timeline for chaining.
func (tl *Timeline) Add(tweens ...Tween) *Timeline {
	tl.Tweens = append(tl.Tweens, tweens...)

	return tl
}

// Duration is the end of the latest tween.
func (tl Timeline) Duration() time.Duration {
	var d time.Duration

	for _, tw := range tl.Tweens {
		if end := tw.End(); end > d {
			d = end
		}
	}

	return d
}

// Sample evaluates every target property at offset t. When several tweens
// drive the same property, the one that started last and has started by t
// wins; before any has started the earliest one's From applies.
func (tl Timeline) Sample(t time.Duration) []Value {
	type key struct {
		target string
		prop   Property
	}

	order := make([]key, 0, len(tl.Tweens))
	owner := make(map[key]Tween, len(tl.Tweens))

	tweens := append([]Tween(nil), tl.Tweens...)
	sort.SliceStable(tweens, func(i, j int) bool {
		return tweens[i].Start < tweens[j].Start
	})

	for _, tw := range tweens {
		k := key{tw.Target, tw.Property}

		cur, seen := owner[k]
		if !seen {
			order = append(order, k)
			owner[k] = tw

			continue
		}

		if tw.Start <= t && tw.Start >= cur.Start {
			owner[k] = tw
		}
	}

	out := make([]Value, 0, len(order))

	for _, k := range order {
		out = append(out, Value{
			Target:   k.target,
			Property: k.prop,
			Value:    owner[k].ValueAt(t),
		})
	}

	return out
}
