package slider

import (
	"context"
	"fmt"
	"time"

	"github.com/amp-labs/hero-slider/envutil"
)

const (
	// DefaultInterval is the autoplay interval used when none is configured.
	DefaultInterval = 7 * time.Second
	// DefaultIntroDelay is how long after a transition starts the entering
	// slide's heading reveal begins.
	DefaultIntroDelay = 80 * time.Millisecond
)

// Config is the controller's construction-time configuration.
type Config struct {
	Autoplay bool
	Interval time.Duration
}

// DefaultConfig returns autoplay enabled with a seven second interval.
func DefaultConfig() Config {
	return Config{
		Autoplay: true,
		Interval: DefaultInterval,
	}
}

// Validate reports a non-positive interval.
func (c Config) Validate() error {
	return validateInterval(c.Interval)
}

func validateInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, d)
	}

	return nil
}

// ConfigFromEnv reads HERO_AUTOPLAY and HERO_INTERVAL, falling back to
// DefaultConfig for anything unset.
func ConfigFromEnv(ctx context.Context) (Config, error) {
	autoplay, err := envutil.Bool(ctx, "HERO_AUTOPLAY",
		envutil.Default(true)).
		Value()
	if err != nil {
		return Config{}, err
	}

	interval, err := envutil.Duration(ctx, "HERO_INTERVAL",
		envutil.Default(DefaultInterval),
		envutil.Validate(validateInterval)).
		Value()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Autoplay: autoplay,
		Interval: interval,
	}, nil
}
