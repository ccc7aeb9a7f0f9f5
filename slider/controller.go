// Package slider drives the hero slide rotation: it owns the active index,
// serializes navigation so that at most one transition is ever in flight,
// runs the autoplay timer, and guarantees that nothing fires after unmount.
//
// Painting and animation are delegated. A Surface receives Frames, and a
// TransitionRunner plays the handoff between slides. Under reduced motion
// the runner is never called and index changes apply synchronously.
package slider

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/amp-labs/hero-slider/clock"
	"github.com/amp-labs/hero-slider/closer"
	errors2 "github.com/amp-labs/hero-slider/errors"
	"github.com/amp-labs/hero-slider/heading"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

// CycleState is a snapshot of the controller's state.
type CycleState struct {
	CurrentIndex         int
	TransitionInProgress bool
	AutoplayEnabled      bool
}

// Controller is the slide cycle controller. Create one with Mount and
// release it with Close. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	ctx        context.Context //nolint:containedctx
	id         string
	name       string
	slides     []Slide
	headings   []*heading.Heading
	cfg        Config
	runner     TransitionRunner
	clock      clock.Clock
	surface    Surface
	stagger    heading.Stagger
	introDelay time.Duration
	reduced    bool

	state CycleState
	alive *atomic.Bool

	// gen identifies the transition in flight; completions carrying any
	// other value are stale.
	gen      uint64
	from, to int
	inflight Handle
	span     trace.Span
	started  time.Time

	autoplay    clock.Timer
	autoplayGen uint64
	intro       clock.Timer
	introGen    uint64
	introSlide  int

	seq          uint64
	listeners    map[uint64]func(Change)
	nextListener uint64
	resources    *closer.Closer
	stopCtx      func() bool
}

// effects are produced under the lock and delivered after it is released,
// so that surfaces and listeners may call back into the controller.
type effects struct {
	frames    []Frame
	change    *Change
	listeners []func(Change)
}

// Mount validates the deck and configuration, paints the first slide,
// reveals its heading and starts autoplay if configured. Cancelling ctx
// unmounts the controller.
func Mount(ctx context.Context, slides []Slide, runner TransitionRunner, opts ...Option) (*Controller, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	errs := errors2.Collection{}
	errs.Add(ValidateSlides(slides))
	errs.Add(o.config.Validate())

	if runner == nil {
		errs.Add(ErrNilRunner)
	}

	if errs.HasError() {
		return nil, errs.GetError()
	}

	id := uuid.NewString()

	c := &Controller{
		ctx:        logger.With(ctx, "slider", o.name, "controller_id", id),
		id:         id,
		name:       o.name,
		slides:     append([]Slide(nil), slides...),
		headings:   make([]*heading.Heading, len(slides)),
		cfg:        o.config,
		runner:     runner,
		clock:      o.clock,
		surface:    o.surface,
		stagger:    o.stagger,
		introDelay: o.introDelay,
		reduced:    o.motion.IsReducedMotion(),
		alive:      atomic.NewBool(true),
		listeners:  make(map[uint64]func(Change)),
		resources:  closer.NewCloser(),
		state: CycleState{
			CurrentIndex:    0,
			AutoplayEnabled: o.config.Autoplay,
		},
	}

	for i, s := range c.slides {
		c.headings[i] = heading.New(s.Title)
	}

	mountedControllers.WithLabelValues(c.name).Inc()

	logger.Get(c.ctx).Debug("slider mounted",
		"slides", len(c.slides),
		"autoplay", c.cfg.Autoplay,
		"interval", c.cfg.Interval,
		"reduced_motion", c.reduced)

	if starter, ok := runner.(MediaStarter); ok {
		c.startMedia(starter, c.slides[0])
	}

	c.mu.Lock()
	first := c.frameLocked(PhaseIdle, nil)
	reveal := c.headings[0].Reveal(c.reduced, c.stagger)
	intro := c.frameLocked(PhaseIntro, &reveal)

	if c.state.AutoplayEnabled {
		c.startAutoplayLocked()
	}
	c.mu.Unlock()

	c.apply(effects{frames: []Frame{first, intro}})

	stop := context.AfterFunc(ctx, func() {
		if err := c.Close(); err != nil {
			logger.Get(c.ctx).Warn("error unmounting slider after context cancellation", "error", err)
		}
	})

	c.mu.Lock()
	c.stopCtx = stop
	c.mu.Unlock()

	return c, nil
}

// ID returns the controller's unique instance ID.
func (c *Controller) ID() string {
	return c.id
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	return len(c.slides)
}

// Slides returns a copy of the deck.
func (c *Controller) Slides() []Slide {
	return append([]Slide(nil), c.slides...)
}

// Reduced reports whether the controller runs in reduced-motion mode.
func (c *Controller) Reduced() bool {
	return c.reduced
}

// State returns a snapshot of the cycle state.
func (c *Controller) State() CycleState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Current returns the slide at the committed current index.
func (c *Controller) Current() Slide {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.slides[c.state.CurrentIndex]
}

// Heading returns the heading state for slide i (normalized like GoTo).
func (c *Controller) Heading(i int) *heading.Heading {
	return c.headings[Normalize(i, len(c.slides))]
}

// Normalize wraps i into [0, n). n must be positive.
func Normalize(i, n int) int {
	return ((i % n) + n) % n
}

// GoTo navigates to slide target, wrapping out-of-range values. It is a
// no-op if target is already current, and the request is dropped if a
// transition is in flight. GoTo does not wait for the transition.
func (c *Controller) GoTo(target int) {
	c.navigate(func(int) int { return target })
}

// Next navigates to the following slide, wrapping at the end.
func (c *Controller) Next() {
	c.navigate(func(cur int) int { return cur + 1 })
}

// Previous navigates to the preceding slide, wrapping at the start.
func (c *Controller) Previous() {
	c.navigate(func(cur int) int { return cur - 1 })
}

func (c *Controller) navigate(target func(current int) int) {
	c.mu.Lock()

	if !c.alive.Load() {
		c.mu.Unlock()

		return
	}

	from := c.state.CurrentIndex
	to := Normalize(target(from), len(c.slides))

	if to == from {
		c.mu.Unlock()

		return
	}

	if c.state.TransitionInProgress {
		c.mu.Unlock()

		gotoDropped.WithLabelValues(c.name).Inc()
		logger.Get(c.ctx).Debug("navigation dropped, transition in flight", "requested", to)

		return
	}

	if c.reduced {
		eff := c.commitLocked(to)
		c.mu.Unlock()

		transitionsTotal.WithLabelValues(c.name, outcomeInstant).Inc()

		// No runner call means nobody else starts the incoming video.
		if starter, ok := c.runner.(MediaStarter); ok {
			c.startMedia(starter, c.slides[to])
		}

		c.apply(eff)

		return
	}

	t := Transition{
		From:      from,
		To:        to,
		FromSlide: c.slides[from],
		ToSlide:   c.slides[to],
	}

	c.gen++
	gen := c.gen
	c.from, c.to = from, to
	c.state.TransitionInProgress = true
	c.started = c.clock.Now()
	c.span = startTransitionSpan(c.ctx, c.name, t)
	c.scheduleIntroLocked(to)
	frame := c.frameLocked(PhaseTransition, nil)
	c.mu.Unlock()

	c.apply(effects{frames: []Frame{frame}})

	handle, err := c.run(t, func(err error) {
		c.complete(gen, err)
	})

	c.mu.Lock()
	stillRunning := c.alive.Load() && c.gen == gen && c.state.TransitionInProgress

	if stillRunning && err == nil {
		c.inflight = handle
	}
	c.mu.Unlock()

	if handle != nil && (err != nil || (!stillRunning && !c.alive.Load())) {
		// The runner failed or the controller was unmounted while Run was
		// starting; either way nobody will cancel this handle later.
		cancelHandle(c.ctx, handle)
	}

	if err != nil {
		c.complete(gen, err)
	}
}

// run calls the runner, converting a panic into an error.
func (c *Controller) run(t Transition, done func(error)) (h Handle, err error) { //nolint:ireturn
	defer func() {
		if r := recover(); r != nil {
			h = nil
			err = errors2.FromPanic(r, debug.Stack())
		}
	}()

	return c.runner.Run(c.ctx, t, done)
}

// complete commits transition gen. Stale, duplicate and post-unmount
// completions are ignored.
func (c *Controller) complete(gen uint64, err error) {
	c.mu.Lock()

	if !c.alive.Load() || gen != c.gen || !c.state.TransitionInProgress {
		c.mu.Unlock()

		return
	}

	span := c.span
	elapsed := c.clock.Now().Sub(c.started)
	c.span = nil
	c.inflight = nil
	eff := c.commitLocked(c.to)
	c.mu.Unlock()

	outcome := outcomeCompleted
	if err != nil {
		outcome = outcomeFailed

		runnerFailures.WithLabelValues(c.name).Inc()
		logger.Get(c.ctx).Warn("transition runner failed, committing slide change anyway",
			"to", eff.change.To, "error", err)
	}

	transitionsTotal.WithLabelValues(c.name, outcome).Inc()
	transitionDuration.WithLabelValues(c.name).Observe(elapsed.Seconds())
	endTransitionSpan(span, outcome, err)

	c.apply(eff)
}

// commitLocked makes to the current index and restarts the autoplay
// countdown. Must be called with mu held.
func (c *Controller) commitLocked(to int) effects {
	from := c.state.CurrentIndex

	c.state.CurrentIndex = to
	c.state.TransitionInProgress = false
	c.from, c.to = to, to

	if c.state.AutoplayEnabled {
		c.startAutoplayLocked()
	}

	eff := effects{
		frames: []Frame{c.frameLocked(PhaseIdle, nil)},
		change: &Change{From: from, To: to, Slide: c.slides[to]},
	}

	if c.reduced {
		reveal := c.headings[to].Reveal(true, c.stagger)
		eff.frames = append(eff.frames, c.frameLocked(PhaseIntro, &reveal))
	}

	for _, l := range c.listeners {
		eff.listeners = append(eff.listeners, l)
	}

	return eff
}

// frameLocked snapshots the state for the surface. Must be called with mu held.
func (c *Controller) frameLocked(phase Phase, intro *heading.Reveal) Frame {
	c.seq++

	visible := make([]bool, len(c.slides))
	from, to := c.state.CurrentIndex, c.state.CurrentIndex

	if c.state.TransitionInProgress {
		from, to = c.from, c.to
		visible[from] = true
	}

	visible[to] = true

	return Frame{
		Seq:           c.seq,
		Phase:         phase,
		Index:         c.state.CurrentIndex,
		From:          from,
		To:            to,
		Transitioning: c.state.TransitionInProgress,
		Visible:       visible,
		Reduced:       c.reduced,
		Intro:         intro,
	}
}

// scheduleIntroLocked arranges the heading reveal of slide to. Must be
// called with mu held.
func (c *Controller) scheduleIntroLocked(to int) {
	c.stopIntroLocked()

	gen := c.introGen
	c.introSlide = to

	c.intro = c.clock.AfterFunc(c.introDelay, func() {
		c.mu.Lock()

		if !c.alive.Load() || gen != c.introGen {
			c.mu.Unlock()

			return
		}

		c.intro = nil
		reveal := c.headings[to].Reveal(false, c.stagger)
		frame := c.frameLocked(PhaseIntro, &reveal)
		frame.To = to
		c.mu.Unlock()

		c.apply(effects{frames: []Frame{frame}})
	})
}

func (c *Controller) stopIntroLocked() {
	if c.intro != nil {
		c.intro.Stop()
		c.intro = nil
	}

	c.introGen++
}

// apply delivers effects outside the lock. Nothing is delivered once the
// controller is unmounted.
func (c *Controller) apply(eff effects) {
	for _, f := range eff.frames {
		if !c.alive.Load() {
			return
		}

		c.render(f)
	}

	if eff.change == nil {
		return
	}

	for _, l := range eff.listeners {
		if !c.alive.Load() {
			return
		}

		c.notify(l, *eff.change)
	}
}

func (c *Controller) render(f Frame) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get(c.ctx).Error("panic in slider surface",
				"phase", f.Phase.String(),
				"error", errors2.FromPanic(r, debug.Stack()))
		}
	}()

	c.surface.Render(f)
}

func (c *Controller) notify(l func(Change), ch Change) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get(c.ctx).Error("panic in slider listener",
				"error", errors2.FromPanic(r, debug.Stack()))
		}
	}()

	l(ch)
}

func (c *Controller) startMedia(starter MediaStarter, s Slide) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get(c.ctx).Warn("media start failed",
				"slide", s.ID,
				"error", errors2.FromPanic(r, debug.Stack()))
		}
	}()

	starter.StartMedia(c.ctx, s)
}

func cancelHandle(ctx context.Context, h Handle) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get(ctx).Warn("panic cancelling transition",
				"error", errors2.FromPanic(r, debug.Stack()))
		}
	}()

	h.Cancel()
}

// Subscribe registers l to be called after every committed index change.
// Closing the returned io.Closer unregisters it; unmounting releases all
// listeners.
func (c *Controller) Subscribe(l func(Change)) io.Closer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive.Load() || l == nil {
		return closer.CustomCloser(func() error { return nil })
	}

	c.nextListener++
	key := c.nextListener
	c.listeners[key] = l

	return closer.CloseOnce(closer.CustomCloser(func() error {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.listeners, key)

		return nil
	}))
}

// Bind ties r to the controller's lifetime: it is closed on unmount,
// in bind order. Binding to an unmounted controller closes r immediately.
// Input subscriptions such as key handlers belong here so they are
// released on every exit path.
func (c *Controller) Bind(r io.Closer) error {
	if r == nil {
		return nil
	}

	c.mu.Lock()

	if !c.alive.Load() {
		c.mu.Unlock()

		return r.Close()
	}

	c.resources.Add(r)
	c.mu.Unlock()

	return nil
}

// Close unmounts the controller. The autoplay timer, the pending heading
// reveal and any in-flight transition are cancelled; bound resources are
// closed and their errors joined. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()

	if !c.alive.Load() {
		c.mu.Unlock()

		return nil
	}

	c.alive.Store(false)

	c.stopAutoplayLocked()
	c.stopIntroLocked()

	c.gen++
	handle := c.inflight
	span := c.span
	wasRunning := c.state.TransitionInProgress
	resources := c.resources
	stop := c.stopCtx

	c.inflight = nil
	c.span = nil
	c.state.TransitionInProgress = false
	c.listeners = map[uint64]func(Change){}
	c.resources = closer.NewCloser()
	c.mu.Unlock()

	if handle != nil {
		cancelHandle(c.ctx, handle)
	}

	if wasRunning {
		transitionsTotal.WithLabelValues(c.name, outcomeCancelled).Inc()
		endTransitionSpan(span, outcomeCancelled, nil)
	}

	if stop != nil {
		stop()
	}

	mountedControllers.WithLabelValues(c.name).Dec()
	logger.Get(c.ctx).Debug("slider unmounted")

	return resources.Close()
}
