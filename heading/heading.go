package heading

import (
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

const (
	// DefaultEach is the delay added per unit in the reveal cascade.
	DefaultEach = 30 * time.Millisecond
	// DefaultDuration is how long each unit takes to appear.
	DefaultDuration = 750 * time.Millisecond
)

// Stagger configures the reveal cascade.
type Stagger struct {
	Each     time.Duration
	Duration time.Duration
}

// DefaultStagger returns the cascade used when none is configured.
func DefaultStagger() Stagger {
	return Stagger{Each: DefaultEach, Duration: DefaultDuration}
}

// Step is one unit's place in a reveal.
type Step struct {
	Unit     Unit
	Delay    time.Duration
	Duration time.Duration
}

// Reveal is a complete plan for showing a heading.
type Reveal struct {
	Steps   []Step
	Reduced bool
}

// Total returns when the last unit finishes appearing.
func (r Reveal) Total() time.Duration {
	var total time.Duration

	for _, s := range r.Steps {
		if end := s.Delay + s.Duration; end > total {
			total = end
		}
	}

	return total
}

// Heading owns the segmentation of one slide title. Splitting happens at
// most once per distinct title; repeated calls reuse the cached result.
type Heading struct {
	mu          sync.Mutex
	title       string
	fingerprint uint64
	seg         *Segmentation
	splits      int
}

// New returns a Heading for title. Nothing is split until Prepare or Reveal.
func New(title string) *Heading {
	return &Heading{title: title}
}

// Title returns the current title.
func (h *Heading) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.title
}

// Retitle replaces the title. The next Prepare re-splits only if the text
// actually changed.
func (h *Heading) Retitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.title = title
}

// Prepare segments the title if it has not been segmented yet.
func (h *Heading) Prepare() Segmentation {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.prepareLocked()
}

func (h *Heading) prepareLocked() Segmentation {
	sum := xxh3.HashString(h.title)

	if h.seg != nil && h.fingerprint == sum {
		return *h.seg
	}

	seg := Split(h.title)
	h.seg = &seg
	h.fingerprint = sum
	h.splits++

	return seg
}

// Splits reports how many times the title has actually been segmented.
func (h *Heading) Splits() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.splits
}

// Reveal plans the entrance of every unit. With reduced set, every unit is
// shown immediately: zero delay and zero duration.
func (h *Heading) Reveal(reduced bool, stagger Stagger) Reveal {
	h.mu.Lock()
	seg := h.prepareLocked()
	h.mu.Unlock()

	return Plan(seg, reduced, stagger)
}

// Plan builds a reveal for an existing segmentation.
func Plan(seg Segmentation, reduced bool, stagger Stagger) Reveal {
	units := seg.Units()
	steps := make([]Step, len(units))

	for i, u := range units {
		steps[i] = Step{Unit: u}

		if !reduced {
			steps[i].Delay = time.Duration(u.Seq) * stagger.Each
			steps[i].Duration = stagger.Duration
		}
	}

	return Reveal{Steps: steps, Reduced: reduced}
}
