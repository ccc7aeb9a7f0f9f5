package bgworker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMedia = errors.New("media unavailable")

func newPool(t *testing.T, size int) *Pool {
	t.Helper()

	p := New(t.Context(), t.Name(), size)
	t.Cleanup(func() {
		assert.NoError(t, p.Close())
	})

	return p
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	p := newPool(t, 2)

	var counter atomic.Int32

	task := p.Submit(func() error {
		counter.Add(1)

		return nil
	})

	require.NoError(t, task.Wait())
	assert.Equal(t, int32(1), counter.Load())

	require.ErrorIs(t, p.Submit(func() error { return errMedia }).Wait(), errMedia)
}

func TestSubmitWithPanic(t *testing.T) {
	t.Parallel()

	p := newPool(t, 1)

	err := p.Submit(func() error {
		panic("test panic")
	}).Wait()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "test panic")
}

func TestGo(t *testing.T) {
	t.Parallel()

	p := newPool(t, 2)

	done := make(chan struct{}, 10)

	for range 10 {
		require.NoError(t, p.Go(func() {
			done <- struct{}{}
		}))
	}

	for i := range 10 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for task %d", i)
		}
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	p := New(t.Context(), "close", 1)

	var counter atomic.Int32

	for range 5 {
		require.NoError(t, p.Go(func() {
			time.Sleep(5 * time.Millisecond)
			counter.Add(1)
		}))
	}

	require.NoError(t, p.Close())
	assert.Equal(t, int32(5), counter.Load(), "close waits for queued work")

	require.NoError(t, p.Close())
	require.Error(t, p.Go(func() {}))
	assert.Equal(t, "close", p.Name())
}

func TestNew_SizeFromEnv(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "BACKGROUND_WORKER_COUNT", "3")
	p := New(ctx, "env", 0)

	defer p.Close() //nolint:errcheck

	assert.Equal(t, 3, p.pool.MaxConcurrency())
}
