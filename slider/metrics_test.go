package slider

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	const name = "metrics-test"

	var pending func(error)

	runner := RunnerFunc(func(_ context.Context, _ Transition, done func(error)) (Handle, error) {
		pending = done

		return HandleFunc(func() {}), nil
	})

	c, err := Mount(t.Context(), []Slide{{ID: "a"}, {ID: "b"}}, runner,
		WithName(name), WithConfig(Config{Autoplay: false, Interval: DefaultInterval}))
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(mountedControllers.WithLabelValues(name)), 0)

	c.Next()
	c.Next()
	assert.InDelta(t, 1, testutil.ToFloat64(gotoDropped.WithLabelValues(name)), 0)

	pending(nil)
	assert.InDelta(t, 1, testutil.ToFloat64(transitionsTotal.WithLabelValues(name, outcomeCompleted)), 0)

	c.Next()
	require.NoError(t, c.Close())

	assert.InDelta(t, 1, testutil.ToFloat64(transitionsTotal.WithLabelValues(name, outcomeCancelled)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(mountedControllers.WithLabelValues(name)), 0)
}
