package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ease Ease
		mid  float64
	}{
		{"none", Linear, 0.5},
		{"power1.in", Power1In, 0.25},
		{"power2.out", Power2Out, 0.875},
		{"power3.out", Power3Out, 0.9375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, 0, tt.ease(0), 1e-9)
			assert.InDelta(t, 1, tt.ease(1), 1e-9)
			assert.InDelta(t, tt.mid, tt.ease(0.5), 1e-9)
			assert.InDelta(t, 0, tt.ease(-3), 1e-9)
			assert.InDelta(t, 1, tt.ease(7), 1e-9)

			parsed, err := ParseEase(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.mid, parsed(0.5), 1e-9)
		})
	}
}

func TestParseEase_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ParseEase("elastic.inOut")
	require.ErrorIs(t, err, ErrUnknownEase)

	linear, err := ParseEase("")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, linear(0.3), 1e-9)
}
