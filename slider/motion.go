package slider

import (
	"context"

	"github.com/amp-labs/hero-slider/envutil"
)

// MotionPreference reports whether non-essential animation should be
// disabled. The controller samples it once, at mount.
type MotionPreference interface {
	IsReducedMotion() bool
}

// MotionPreferenceFunc adapts a function to MotionPreference.
type MotionPreferenceFunc func() bool

func (f MotionPreferenceFunc) IsReducedMotion() bool {
	return f()
}

// StaticMotion is a fixed preference. StaticMotion(true) requests reduced motion.
type StaticMotion bool

func (s StaticMotion) IsReducedMotion() bool {
	return bool(s)
}

// EnvMotionPreference reads HERO_REDUCED_MOTION (default false).
func EnvMotionPreference(ctx context.Context) StaticMotion {
	return StaticMotion(envutil.Bool(ctx, "HERO_REDUCED_MOTION",
		envutil.Default(false)).
		ValueOrElse(false))
}
