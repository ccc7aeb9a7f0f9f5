package heading

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_PreservesLineBreaks(t *testing.T) {
	t.Parallel()

	seg := Split("UI / UX\nDESIGN")

	require.Len(t, seg.Lines, 2)
	assert.Len(t, seg.Lines[0], 7)
	assert.Len(t, seg.Lines[1], 6)
	assert.Equal(t, 13, seg.Len())
	assert.Equal(t, "UI / UX\nDESIGN", seg.String())

	first := seg.Lines[1][0]
	assert.Equal(t, "D", first.Text)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 0, first.Column)
	assert.Equal(t, 7, first.Seq)

	assert.True(t, seg.Lines[0][2].Space)
	assert.False(t, seg.Lines[0][0].Space)
}

func TestSplit_CombiningMarksStayTogether(t *testing.T) {
	t.Parallel()

	// q + combining dot above has no precomposed form.
	seg := Split("q\u0307a")
	units := seg.Units()

	require.Len(t, units, 2)
	assert.Equal(t, "q\u0307", units[0].Text)
	assert.Equal(t, "a", units[1].Text)

	// e + combining acute composes to a single rune.
	seg = Split("e\u0301")
	require.Equal(t, 1, seg.Len())
	assert.Equal(t, "\u00e9", seg.Units()[0].Text)
}

func TestSplit_CRLFAndBlankLines(t *testing.T) {
	t.Parallel()

	seg := Split("A\r\n\r\nB")

	require.Len(t, seg.Lines, 3)
	assert.Empty(t, seg.Lines[1])
	assert.Equal(t, 1, seg.Lines[2][0].Seq)
	assert.Equal(t, "A\n\nB", seg.String())
}

func TestHeading_PrepareIsIdempotent(t *testing.T) {
	t.Parallel()

	h := New("PRODUCT\nDESIGN")

	first := h.Prepare()
	second := h.Prepare()
	h.Reveal(false, DefaultStagger())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, h.Splits())

	h.Retitle("PRODUCT\nDESIGN")
	h.Prepare()
	assert.Equal(t, 1, h.Splits(), "same title must not re-split")

	h.Retitle("BRAND")
	seg := h.Prepare()
	assert.Equal(t, 2, h.Splits())
	assert.Equal(t, "BRAND", seg.String())
	assert.Equal(t, "BRAND", h.Title())
}

func TestHeading_ConcurrentPrepare(t *testing.T) {
	t.Parallel()

	h := New("UI / UX\nDESIGN")

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			h.Prepare()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, h.Splits())
}

func TestReveal_Stagger(t *testing.T) {
	t.Parallel()

	r := New("AB\nC").Reveal(false, DefaultStagger())

	require.Len(t, r.Steps, 3)
	assert.False(t, r.Reduced)

	for i, step := range r.Steps {
		assert.Equal(t, time.Duration(i)*30*time.Millisecond, step.Delay)
		assert.Equal(t, 750*time.Millisecond, step.Duration)
	}

	assert.Equal(t, "C", r.Steps[2].Unit.Text)
	assert.Equal(t, 60*time.Millisecond+750*time.Millisecond, r.Total())
}

func TestReveal_ReducedMotionIsInstant(t *testing.T) {
	t.Parallel()

	r := New("UI / UX\nDESIGN").Reveal(true, DefaultStagger())

	assert.True(t, r.Reduced)
	require.Len(t, r.Steps, 13)

	for _, step := range r.Steps {
		assert.Zero(t, step.Delay)
		assert.Zero(t, step.Duration)
	}

	assert.Zero(t, r.Total())
}
