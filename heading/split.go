// Package heading splits slide titles into display units and plans the
// staggered character reveal played when a slide enters.
package heading

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Unit is one displayable character of a heading. A base character and its
// combining marks form a single unit.
type Unit struct {
	Text string
	// Line is the zero-based line the unit sits on.
	Line int
	// Column is the unit's position within its line.
	Column int
	// Seq is the unit's position across the whole heading. Reveal delays
	// are derived from it.
	Seq int
	// Space is true for whitespace units. Renderers typically emit a
	// non-breaking space for them so the line keeps its width.
	Space bool
}

// Segmentation is a heading split into lines of units.
type Segmentation struct {
	Lines [][]Unit
}

// Units returns every unit in sequence order.
func (s Segmentation) Units() []Unit {
	var out []Unit

	for _, line := range s.Lines {
		out = append(out, line...)
	}

	return out
}

// Len returns the total number of units.
func (s Segmentation) Len() int {
	n := 0

	for _, line := range s.Lines {
		n += len(line)
	}

	return n
}

// String reassembles the heading, joining lines with "\n".
func (s Segmentation) String() string {
	var sb strings.Builder

	for i, line := range s.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		for _, u := range line {
			sb.WriteString(u.Text)
		}
	}

	return sb.String()
}

// Split segments title into units, one line per explicit line break.
// "\r\n" counts as a single break. Empty lines are kept so that blank
// rows survive the round trip.
func Split(title string) Segmentation {
	title = strings.ReplaceAll(norm.NFC.String(title), "\r\n", "\n")

	var (
		seg Segmentation
		seq int
	)

	for lineNo, part := range strings.Split(title, "\n") {
		line := make([]Unit, 0, len(part))

		var it norm.Iter

		it.InitString(norm.NFC, part)

		for col := 0; !it.Done(); col++ {
			text := string(it.Next())

			line = append(line, Unit{
				Text:   text,
				Line:   lineNo,
				Column: col,
				Seq:    seq,
				Space:  isSpace(text),
			})

			seq++
		}

		seg.Lines = append(seg.Lines, line)
	}

	return seg
}

func isSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}

	return s != ""
}
