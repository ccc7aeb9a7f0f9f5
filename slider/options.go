package slider

import (
	"time"

	"github.com/amp-labs/hero-slider/clock"
	"github.com/amp-labs/hero-slider/heading"
)

type options struct {
	config     Config
	clock      clock.Clock
	motion     MotionPreference
	surface    Surface
	stagger    heading.Stagger
	introDelay time.Duration
	name       string
}

func defaultOptions() options {
	return options{
		config:     DefaultConfig(),
		clock:      clock.Real(),
		motion:     StaticMotion(false),
		surface:    nopSurface{},
		stagger:    heading.DefaultStagger(),
		introDelay: DefaultIntroDelay,
		name:       "hero",
	}
}

// Option configures Mount.
type Option func(*options)

// WithConfig sets autoplay and its interval.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithClock replaces the real clock, typically with a clock.Manual in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMotionPreference sets the reduced-motion source sampled at mount.
func WithMotionPreference(m MotionPreference) Option {
	return func(o *options) {
		if m != nil {
			o.motion = m
		}
	}
}

// WithSurface sets the rendering surface.
func WithSurface(s Surface) Option {
	return func(o *options) {
		if s != nil {
			o.surface = s
		}
	}
}

// WithStagger configures the heading reveal cascade.
func WithStagger(s heading.Stagger) Option {
	return func(o *options) {
		o.stagger = s
	}
}

// WithIntroDelay sets the delay between a transition starting and the
// entering heading's reveal.
func WithIntroDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.introDelay = d
		}
	}
}

// WithName labels the controller's logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
