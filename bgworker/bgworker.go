// Package bgworker runs fire-and-forget work, such as starting slide media,
// on a bounded pool of goroutines.
package bgworker

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"go.uber.org/atomic"
)

const defaultWorkerCount = 4

// Pool is a named, bounded worker pool. The zero value is not usable; create
// one with New and release it with Close.
type Pool struct {
	name   string
	pool   pond.Pool
	closed *atomic.Bool
}

// New creates a pool with size workers. A non-positive size falls back to
// BACKGROUND_WORKER_COUNT, or 4 when that is unset. Cancelling ctx stops the
// pool from accepting new work.
func New(ctx context.Context, name string, size int) *Pool {
	if size <= 0 {
		size = envutil.Int(ctx, "BACKGROUND_WORKER_COUNT",
			envutil.Default(defaultWorkerCount)).ValueOrElse(defaultWorkerCount)
	}

	logger.Get(ctx).Debug("Initializing background worker pool", "name", name, "count", size)

	return &Pool{
		name:   name,
		pool:   pond.NewPool(size, pond.WithContext(ctx)),
		closed: atomic.NewBool(false),
	}
}

// Name returns the pool's name.
func (p *Pool) Name() string {
	return p.name
}

// Go runs f in the background. It returns immediately, with an error if the
// pool has been stopped.
func (p *Pool) Go(f func()) error {
	return p.pool.Go(f)
}

// Submit runs f in the background and returns a Task to wait on. A panic in
// f surfaces as the task's error.
func (p *Pool) Submit(f func() error) pond.Task { //nolint:ireturn
	return p.pool.SubmitErr(f)
}

// Close stops accepting work and waits for queued tasks to finish.
// Calling it again is a no-op.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	logger.Get().Debug("Stopping background worker pool", "name", p.name)
	p.pool.StopAndWait()

	return nil
}
