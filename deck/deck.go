// Package deck loads hero slide decks from YAML.
//
// A deck file looks like:
//
//	slides:
//	  - id: s1
//	    title: "UI / UX\nDESIGN"
//	    video: /test1.mp4
//	    poster: /videos/slide-1-poster.jpg
//	    cta:
//	      text: View Projects
//	      href: "#projects"
package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"facette.io/natsort"
	errors2 "github.com/amp-labs/hero-slider/errors"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/should"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/amp-labs/hero-slider/spans"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyTitle is reported for a slide without a title.
	ErrEmptyTitle = errors.New("slide title is empty")
	// ErrMissingHref is reported for a call to action without a link.
	ErrMissingHref = errors.New("call to action has no href")
	// ErrNoDeckFiles is returned by LoadDir when the directory holds no YAML files.
	ErrNoDeckFiles = errors.New("no deck files found")
)

type deckDoc struct {
	Slides []slideDoc `yaml:"slides"`
}

type slideDoc struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Video  string   `yaml:"video"`
	Poster string   `yaml:"poster"`
	CTA    *linkDoc `yaml:"cta"`
}

type linkDoc struct {
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

func (d slideDoc) toSlide() slider.Slide {
	s := slider.Slide{
		ID:    strings.TrimSpace(d.ID),
		Title: d.Title,
		Media: slider.Media{Video: d.Video, Poster: d.Poster},
	}

	if d.CTA != nil {
		s.CTA = &slider.Link{Text: d.CTA.Text, Href: d.CTA.Href}
	}

	return s
}

// Default returns the built-in two-slide deck.
func Default() []slider.Slide {
	return []slider.Slide{
		{
			ID:    "s1",
			Title: "UI / UX\nDESIGN",
			Media: slider.Media{Video: "/test1.mp4", Poster: "/videos/slide-1-poster.jpg"},
			CTA:   &slider.Link{Text: "View Projects", Href: "#projects"},
		},
		{
			ID:    "s2",
			Title: "PRODUCT\nDESIGN",
			Media: slider.Media{Video: "/test1.mp4", Poster: "/videos/slide-2-poster.jpg"},
			CTA:   &slider.Link{Text: "See Work", Href: "#projects"},
		},
	}
}

// Validate reports every problem in the deck at once.
func Validate(slides []slider.Slide) error {
	if len(slides) == 0 {
		return slider.ErrNoSlides
	}

	errs := errors2.Collection{}
	errs.Add(slider.ValidateSlides(slides))

	for i, s := range slides {
		if strings.TrimSpace(s.Title) == "" {
			errs.Addf("slide %d (%s): %w", i, s.ID, ErrEmptyTitle)
		}

		if s.CTA != nil && strings.TrimSpace(s.CTA.Href) == "" {
			errs.Addf("slide %d (%s): %w", i, s.ID, ErrMissingHref)
		}
	}

	return errs.GetError()
}

// Load parses and validates one deck document.
func Load(ctx context.Context, r io.Reader) ([]slider.Slide, error) {
	slides, err := parse(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := Validate(slides); err != nil {
		return nil, err
	}

	return slides, nil
}

// LoadFile parses and validates the deck at path.
func LoadFile(ctx context.Context, path string) ([]slider.Slide, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}

	defer should.Close(ctx, f, "closing deck file", "path", path)

	slides, err := spans.StartValErr[[]slider.Slide](ctx, "deck.load",
		spans.WithAttribute("path", attribute.StringValue(path)),
	).Enter(func(ctx context.Context, _ trace.Span) ([]slider.Slide, error) {
		return Load(logger.With(ctx, "deck", path), f)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return slides, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, in natural order, and
// validates the combined deck. Subdirectories are ignored.
func LoadDir(ctx context.Context, dir string) ([]slider.Slide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading deck directory: %w", err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDeckFiles, dir)
	}

	natsort.Sort(names)

	var slides []slider.Slide

	for _, name := range names {
		path := filepath.Join(dir, name)

		part, err := parseFile(logger.With(ctx, "deck", path), path)
		if err != nil {
			return nil, err
		}

		slides = append(slides, part...)
	}

	logger.Get(ctx).Debug("loaded deck directory", "dir", dir, "files", len(names), "slides", len(slides))

	if err := Validate(slides); err != nil {
		return nil, err
	}

	return slides, nil
}

func parseFile(ctx context.Context, path string) ([]slider.Slide, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}

	defer should.Close(ctx, f, "closing deck file", "path", path)

	slides, err := parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return slides, nil
}

func parse(ctx context.Context, r io.Reader) ([]slider.Slide, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}

	data, err := toUTF8(ctx, raw)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc deckDoc

	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	slides := make([]slider.Slide, 0, len(doc.Slides))

	for _, d := range doc.Slides {
		slides = append(slides, d.toSlide())
	}

	return slides, nil
}
