package envutil_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotPositive = errors.New("must be positive")

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestString(t *testing.T) {
	t.Run("present value", func(t *testing.T) {
		t.Setenv("HERO_TEST_STRING", "hello")

		reader := envutil.String(t.Context(), "HERO_TEST_STRING")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
		assert.True(t, reader.HasValue())
		assert.Equal(t, "HERO_TEST_STRING=hello", reader.String())
	})

	t.Run("missing value", func(t *testing.T) {
		reader := envutil.String(t.Context(), "HERO_TEST_STRING_MISSING")
		_, err := reader.Value()
		require.ErrorIs(t, err, envutil.ErrEnvVarMissing)
		assert.False(t, reader.HasValue())
		assert.Equal(t, "HERO_TEST_STRING_MISSING=<not set>", reader.String())
	})

	t.Run("context override wins", func(t *testing.T) {
		t.Setenv("HERO_TEST_OVERRIDE", "from-env")

		ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_OVERRIDE", "from-ctx")
		assert.Equal(t, "from-ctx", envutil.String(ctx, "HERO_TEST_OVERRIDE").ValueOrElse(""))
	})
}

func TestBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
	}

	for _, tt := range tests {
		ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_BOOL", tt.value)

		value, err := envutil.Bool(ctx, "HERO_TEST_BOOL").Value()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, value, tt.value)
	}

	ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_BOOL", "maybe")
	reader := envutil.Bool(ctx, "HERO_TEST_BOOL", envutil.Default(true))
	assert.True(t, reader.HasError())
	assert.False(t, reader.ValueOrElse(false))

	_, err := reader.Value()
	require.ErrorIs(t, err, envutil.ErrBadEnvVar)
}

func TestDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"7s", 7 * time.Second},
		{"1500ms", 1500 * time.Millisecond},
		{"7000", 7 * time.Second},
		{" 250 ", 250 * time.Millisecond},
	}

	for _, tt := range tests {
		ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_DURATION", tt.value)

		value, err := envutil.Duration(ctx, "HERO_TEST_DURATION").Value()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, value, tt.value)
	}

	value := envutil.Duration(t.Context(), "HERO_TEST_DURATION_MISSING",
		envutil.Default(3*time.Second)).ValueOrElse(0)
	assert.Equal(t, 3*time.Second, value)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	positive := envutil.Validate(func(d time.Duration) error {
		if d <= 0 {
			return errNotPositive
		}

		return nil
	})

	ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_INTERVAL", "-5s")
	_, err := envutil.Duration(ctx, "HERO_TEST_INTERVAL", positive).Value()
	require.ErrorIs(t, err, errNotPositive)

	ctx = envutil.WithEnvOverride(t.Context(), "HERO_TEST_INTERVAL", "5s")
	value, err := envutil.Duration(ctx, "HERO_TEST_INTERVAL", positive).Value()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, value)
}

func TestIntAndSlogLevel(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "HERO_TEST_INT", "12")
	assert.Equal(t, 12, envutil.Int(ctx, "HERO_TEST_INT").ValueOrElse(0))

	ctx = envutil.WithEnvOverride(t.Context(), "HERO_TEST_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, envutil.SlogLevel(ctx, "HERO_TEST_LEVEL").ValueOrElse(slog.LevelInfo))
}
