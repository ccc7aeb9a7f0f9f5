// Package errors holds the shared error helpers: a collector for reporting several
// validation problems at once, and conversion of recovered panics into errors.
package errors

import (
	"errors"
	"fmt"
)

// ErrPanicRecovery marks an error that was converted from a recovered panic.
var ErrPanicRecovery = errors.New("recovered from panic")

// Collection is a thread-unsafe utility for accumulating multiple errors.
// Use it when every problem should be reported together rather than only the first.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf appends a formatted error. The format may use %w to wrap a sentinel.
func (c *Collection) Addf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Errorf(format, args...)) //nolint:err113
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns nil when empty, the single error when there is one,
// or an errors.Join of everything otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}

// FromPanic converts a recovered panic value into an error wrapping ErrPanicRecovery.
// It returns nil if the value is nil. A non-nil stack is appended to the message.
func FromPanic(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	var err error
	if e, ok := recovered.(error); ok {
		err = fmt.Errorf("%w: %w", ErrPanicRecovery, e)
	} else {
		err = fmt.Errorf("%w: %v", ErrPanicRecovery, recovered)
	}

	if stack != nil {
		return fmt.Errorf("%w\nstack trace:\n%s", err, string(stack))
	}

	return err
}
