package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/amp-labs/hero-slider/cli"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/amp-labs/hero-slider/timeline"
)

// terminalSurface draws slides as banners. Heading reveals are played on
// the timeline engine; the terminal only shows the settled text.
type terminalSurface struct {
	mu      sync.Mutex
	ctx     context.Context //nolint:containedctx
	out     io.Writer
	slides  []slider.Slide
	width   int
	plain   bool
	lastSeq uint64
	intro   *timeline.Playback
	closed  bool
}

func newTerminalSurface(ctx context.Context, out io.Writer, slides []slider.Slide) *terminalSurface {
	return &terminalSurface{
		ctx:    ctx,
		out:    out,
		slides: slides,
		width:  cli.TerminalWidth(ctx),
		plain:  cli.Plain(ctx),
	}
}

func (s *terminalSurface) Render(f slider.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || f.Seq <= s.lastSeq {
		return
	}

	s.lastSeq = f.Seq

	switch f.Phase {
	case slider.PhaseTransition:
		writeLine(s.out, fmt.Sprintf("%s -> %s", s.slides[f.From].ID, s.slides[f.To].ID))
	case slider.PhaseIdle:
		s.draw(f)
	case slider.PhaseIntro:
		s.reveal(f)
	}
}

func (s *terminalSurface) draw(f slider.Frame) {
	slide := s.slides[f.Index]

	if s.plain {
		writeLine(s.out, slide.Title)
	} else {
		writeLine(s.out, cli.Banner(slide.Title, s.width, cli.AlignCenter))
	}

	if slide.CTA != nil {
		writeLine(s.out, fmt.Sprintf("  [%s](%s)", slide.CTA.Text, slide.CTA.Href))
	}

	writeLine(s.out, "  "+dots(len(s.slides), f.Index))
}

func (s *terminalSurface) reveal(f slider.Frame) {
	if f.Intro == nil {
		return
	}

	if s.intro != nil {
		s.intro.Cancel()
	}

	id := s.slides[f.To].ID
	ctx := logger.With(s.ctx, "slide", id)

	s.intro = timeline.Play(nil, timeline.Stagger(id, *f.Intro), 0, nil, func(error) {
		logger.Get(ctx).Debug("heading revealed", "units", len(f.Intro.Steps))
	})
}

// Close stops any running reveal. Nothing is drawn afterwards.
func (s *terminalSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	if s.intro != nil {
		s.intro.Cancel()
		s.intro = nil
	}

	return nil
}

func dots(n, current int) string {
	parts := make([]string, n)

	for i := range parts {
		parts[i] = "o"
		if i == current {
			parts[i] = "*"
		}
	}

	return strings.Join(parts, " ")
}
