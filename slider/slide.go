package slider

import errors2 "github.com/amp-labs/hero-slider/errors"

// Media is the opaque media handle of a slide.
type Media struct {
	Video  string
	Poster string
}

// Link is a call to action.
type Link struct {
	Text string
	Href string
}

// Slide is one entry in the rotating hero sequence.
type Slide struct {
	ID string
	// Title may contain "\n" for explicit line breaks.
	Title string
	Media Media
	CTA   *Link
}

// ValidateSlides checks that there is at least one slide and that every
// slide has a unique, non-empty ID. All problems are reported together.
func ValidateSlides(slides []Slide) error {
	if len(slides) == 0 {
		return ErrNoSlides
	}

	errs := errors2.Collection{}
	seen := make(map[string]int, len(slides))

	for i, s := range slides {
		if s.ID == "" {
			errs.Addf("slide %d: %w", i, ErrEmptySlideID)

			continue
		}

		if prev, ok := seen[s.ID]; ok {
			errs.Addf("slide %d: %w %q (first used by slide %d)", i, ErrDuplicateSlideID, s.ID, prev)

			continue
		}

		seen[s.ID] = i
	}

	return errs.GetError()
}
