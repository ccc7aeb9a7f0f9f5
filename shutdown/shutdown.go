// Package shutdown turns SIGINT and SIGTERM into context cancellation. Hooks
// registered with BeforeShutdown run first, while the context is still live.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amp-labs/hero-slider/logger"
)

// Handler owns the signal subscription for one process run.
type Handler struct {
	ctx     context.Context //nolint:containedctx
	cancel  context.CancelFunc
	signals chan os.Signal
	once    sync.Once

	mu    sync.Mutex
	hooks []func(ctx context.Context)
}

// SetupHandler subscribes to SIGINT and SIGTERM and returns a context that is
// cancelled once the first of them arrives (or Shutdown is called). Call Stop
// when done to release the subscription.
func SetupHandler(parent context.Context) (context.Context, *Handler) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		ctx:     ctx,
		cancel:  cancel,
		signals: make(chan os.Signal, 1),
	}

	signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)

	go h.wait()

	return ctx, h
}

// BeforeShutdown registers fn to run, in registration order, before the
// context is cancelled.
func (h *Handler) BeforeShutdown(fn func(ctx context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hooks = append(h.hooks, fn)
}

// Shutdown runs the hooks and cancels the context, as if a signal arrived.
func (h *Handler) Shutdown() {
	h.trigger()
}

// Stop cancels the context without running hooks. Safe to call after
// Shutdown.
func (h *Handler) Stop() {
	h.once.Do(h.cancel)
}

func (h *Handler) wait() {
	defer signal.Stop(h.signals)

	select {
	case sig := <-h.signals:
		logger.Get(h.ctx).Warn("received " + sig.String() + ", shutting down")
		h.trigger()
	case <-h.ctx.Done():
	}
}

func (h *Handler) trigger() {
	h.once.Do(func() {
		h.mu.Lock()
		hooks := h.hooks
		h.hooks = nil
		h.mu.Unlock()

		for _, fn := range hooks {
			fn(h.ctx)
		}

		h.cancel()
	})
}
