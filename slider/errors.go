package slider

import "errors"

var (
	// ErrNoSlides is returned by Mount when the deck is empty.
	ErrNoSlides = errors.New("slider needs at least one slide")
	// ErrEmptySlideID is returned when a slide has no ID.
	ErrEmptySlideID = errors.New("slide id is empty")
	// ErrDuplicateSlideID is returned when two slides share an ID.
	ErrDuplicateSlideID = errors.New("duplicate slide id")
	// ErrInvalidInterval is returned when the autoplay interval is not positive.
	ErrInvalidInterval = errors.New("autoplay interval must be positive")
	// ErrNilRunner is returned by Mount when no TransitionRunner is supplied.
	ErrNilRunner = errors.New("transition runner is nil")
)
