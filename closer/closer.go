// Package closer manages the release of scoped resources: listener
// registrations, event subscriptions and anything else that must be undone
// when the component that acquired it is torn down.
package closer

import (
	"errors"
	"io"
	"runtime/debug"
	"sync"

	errors2 "github.com/amp-labs/hero-slider/errors"
)

type customCloser struct {
	closeFn func() error
}

// CustomCloser turns a release function into an io.Closer.
// It returns nil if closeFn is nil.
//
//	sub := closer.CustomCloser(func() error {
//	    return bus.Unsubscribe(id)
//	})
//	_ = ctrl.Bind(sub)
func CustomCloser(closeFn func() error) io.Closer {
	if closeFn == nil {
		return nil
	}

	return &customCloser{closeFn: closeFn}
}

func (c *customCloser) Close() error {
	return c.closeFn()
}

// Closer collects io.Closers and releases them all at once, in the order
// they were added. Every closer is attempted even if earlier ones fail or
// panic; failures are joined. It is safe for concurrent use.
type Closer struct {
	mu      sync.Mutex
	closers []io.Closer
}

// NewCloser creates a Closer holding the given closers.
func NewCloser(closers ...io.Closer) *Closer {
	return &Closer{closers: closers}
}

// Add registers a closer. Nil closers are skipped at Close.
func (c *Closer) Add(closer io.Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closers = append(c.closers, closer)
}

// Len returns the number of registered closers.
func (c *Closer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.closers)
}

// Close releases every registered closer and empties the collection, so a
// second Close is a no-op.
func (c *Closer) Close() error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var errs []error

	for _, closer := range closers {
		if closer == nil {
			continue
		}

		if err := HandlePanic(closer).Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type closeOnceImpl struct {
	mut    sync.Mutex
	closed bool
	closer io.Closer
}

// CloseOnce wraps closer so that only the first successful Close reaches
// it. A failed Close can be retried.
func CloseOnce(closer io.Closer) io.Closer {
	if closer == nil {
		return nil
	}

	if once, ok := closer.(*closeOnceImpl); ok {
		return once
	}

	return &closeOnceImpl{closer: closer}
}

func (c *closeOnceImpl) Close() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.closed {
		return nil
	}

	if err := c.closer.Close(); err != nil {
		return err
	}

	c.closed = true

	return nil
}

type panicHandlingImpl struct {
	closer io.Closer
}

// HandlePanic wraps closer so that a panic inside Close is returned as an
// error wrapping errors.ErrPanicRecovery.
func HandlePanic(closer io.Closer) io.Closer {
	if closer == nil {
		return nil
	}

	if _, ok := closer.(*panicHandlingImpl); ok {
		return closer
	}

	return &panicHandlingImpl{closer: closer}
}

func (p *panicHandlingImpl) Close() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(err, errors2.FromPanic(r, debug.Stack()))
		}
	}()

	return p.closer.Close()
}
