// Package player provides the demo's media players: one that only logs, and
// one that hands each video to an external command.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/slider"
)

// ErrMediaCommand is returned when the media command exits non-zero.
var ErrMediaCommand = errors.New("media command failed")

// Log records media starts in the log and never fails.
type Log struct{}

func (Log) Play(ctx context.Context, slideID string, m slider.Media) error {
	logger.Get(ctx).Info("media started", "slide", slideID, "video", m.Video, "poster", m.Poster)

	return nil
}

// Command runs Name with Args followed by the video path for every media
// start. HERO_SLIDE_ID and HERO_POSTER are added to its environment.
type Command struct {
	Name string
	Args []string
}

// CommandFromEnv builds a Command from HERO_MEDIA_COMMAND, split on
// whitespace. It returns nil when the variable is unset or blank.
func CommandFromEnv(ctx context.Context) *Command {
	fields := strings.Fields(envutil.String(ctx, "HERO_MEDIA_COMMAND").ValueOrElse(""))
	if len(fields) == 0 {
		return nil
	}

	return &Command{Name: fields[0], Args: fields[1:]}
}

func (c *Command) Play(ctx context.Context, slideID string, m slider.Media) error {
	var output []byte

	args := append(append([]string(nil), c.Args...), m.Video)

	code, err := newProcess(ctx, c.Name, args...).
		appendEnv("HERO_SLIDE_ID", slideID).
		appendEnv("HERO_POSTER", m.Poster).
		observeOutput(func(b []byte) { output = b }).
		run(ctx)
	if err != nil {
		return fmt.Errorf("running %s: %w", c.Name, err)
	}

	if code != 0 {
		return fmt.Errorf("%w: %s exited with %d: %s",
			ErrMediaCommand, c.Name, code, strings.TrimSpace(string(output)))
	}

	return nil
}
