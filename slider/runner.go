package slider

import "context"

// Transition describes one handoff between slides.
type Transition struct {
	From      int
	To        int
	FromSlide Slide
	ToSlide   Slide
}

// Handle is an in-flight transition.
type Handle interface {
	// Cancel stops the transition. The completion callback must not be
	// called after Cancel returns. Cancel is safe to call more than once.
	Cancel()
}

// TransitionRunner plays the visual handoff between two slides.
//
// Run plays an exit animation on the outgoing slide concurrently with an
// enter animation on the incoming one, and starts the incoming slide's media
// right away. It returns without waiting. done is called once when the
// animation finishes, possibly from another goroutine; a non-nil error
// reports a cosmetic failure. The controller commits the index swap whatever
// Run or done report.
type TransitionRunner interface {
	Run(ctx context.Context, t Transition, done func(error)) (Handle, error)
}

// MediaStarter is implemented by runners that can start a slide's media
// outside a transition. The controller uses it at mount for the first slide.
type MediaStarter interface {
	StartMedia(ctx context.Context, s Slide)
}

// RunnerFunc adapts a function to TransitionRunner.
type RunnerFunc func(ctx context.Context, t Transition, done func(error)) (Handle, error)

func (f RunnerFunc) Run(ctx context.Context, t Transition, done func(error)) (Handle, error) { //nolint:ireturn
	return f(ctx, t, done)
}

// HandleFunc adapts a function to Handle.
type HandleFunc func()

func (f HandleFunc) Cancel() {
	f()
}
