package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock that only moves when Advance is called. Callbacks fire
// synchronously on the goroutine calling Advance, in deadline order, which
// makes timer-driven behaviour reproducible in tests.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	nextID  uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	id       uint64
	deadline time.Time
	f        func()
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// AfterFunc schedules f to run once the clock has advanced by d.
// A non-positive d fires on the next Advance, including Advance(0).
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer { //nolint:ireturn
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++

	t := &manualTimer{
		clock:    m,
		id:       m.nextID,
		deadline: m.now.Add(d),
		f:        f,
	}

	m.pending = append(m.pending, t)

	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pending)
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Timers scheduled by a firing callback also fire
// if their deadline is inside the window. The clock reads each timer's
// deadline while its callback runs.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()

		next := m.popDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()

			return
		}

		if next.deadline.After(m.now) {
			m.now = next.deadline
		}

		m.mu.Unlock()

		next.f()
	}
}

// popDue removes and returns the earliest timer due by target. Ties fire in
// scheduling order. Must be called with mu held.
func (m *Manual) popDue(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].deadline.Equal(m.pending[j].deadline) {
			return m.pending[i].id < m.pending[j].id
		}

		return m.pending[i].deadline.Before(m.pending[j].deadline)
	})

	first := m.pending[0]
	if first.deadline.After(target) {
		return nil
	}

	m.pending = m.pending[1:]

	return first
}

func (t *manualTimer) Stop() bool {
	m := t.clock

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)

			return true
		}
	}

	return false
}
