// Package clock abstracts the passage of time so that autoplay and animation
// scheduling can be driven deterministically in tests.
package clock

import "time"

// Timer is a pending callback scheduled with AfterFunc.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Clock tells the time and schedules callbacks.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f once d has elapsed. Real clocks call f on its own
	// goroutine; callers must not assume which goroutine runs it.
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { //nolint:ireturn
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { //nolint:ireturn
	return time.AfterFunc(d, f)
}
