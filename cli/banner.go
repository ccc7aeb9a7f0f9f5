// Package cli holds terminal helpers for the demo: boxed banners sized to
// the terminal, and promptui-based prompts.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"unicode"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"golang.org/x/text/width"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	dividerLeft    = "┠"
	dividerMiddle  = "─"
	dividerRight   = "┨"
	ellipsis       = "…"
)

// Alignment positions text inside a banner.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

const (
	DefaultTerminalWidth = 80

	bannerPadding = 2
)

// Plain reports whether HERO_NO_BANNER asks for undecorated output.
func Plain(ctx context.Context) bool {
	return envutil.Bool(ctx, "HERO_NO_BANNER", envutil.Default(false)).ValueOrElse(false)
}

// TerminalWidth returns the terminal's column count. It falls back to
// COLUMNS, then to DefaultTerminalWidth.
func TerminalWidth(ctx context.Context) int {
	if _, cols, err := TerminalDimensions(); err == nil && cols > 0 {
		return cols
	}

	return envutil.Int(ctx, "COLUMNS", envutil.Default(DefaultTerminalWidth)).
		ValueOrElse(DefaultTerminalWidth)
}

// Divider draws a horizontal rule width columns wide.
func Divider(width int) string {
	if width < bannerPadding {
		return ""
	}

	return dividerLeft + strings.Repeat(dividerMiddle, width-bannerPadding) + dividerRight + "\n"
}

// Banner boxes every line of s into a frame width columns wide. Lines that
// do not fit are truncated with an ellipsis. Wide (East Asian) characters
// count as two columns.
func Banner(s string, width int, alignment Alignment) string {
	inner := width - bannerPadding
	if inner <= 0 || s == "" {
		return ""
	}

	parts := []string{boxTopLeft + strings.Repeat(boxTop, inner) + boxTopRight}

	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line, ok := pad(l, inner, alignment)
		if !ok {
			return ""
		}

		parts = append(parts, boxSide+line+boxSide)
	}

	parts = append(parts, boxBottomLeft+strings.Repeat(boxBottom, inner)+boxBottomRight)

	return strings.Join(parts, "\n")
}

// BannerAutoWidth is Banner sized to the terminal. With HERO_NO_BANNER set
// it returns s unchanged.
func BannerAutoWidth(ctx context.Context, s string, alignment Alignment) string {
	if Plain(ctx) {
		return s + "\n"
	}

	return Banner(s, TerminalWidth(ctx), alignment)
}

// Columns returns the display width of s.
func Columns(s string) int {
	n := 0

	for _, r := range s {
		n += runeColumns(r)
	}

	return n
}

func runeColumns(r rune) int {
	if !unicode.IsGraphic(r) || unicode.Is(unicode.Mn, r) {
		return 0
	}

	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2 //nolint:mnd
	default:
		return 1
	}
}

func truncate(s string, limit int) (string, int) {
	var (
		sb   strings.Builder
		used int
	)

	for _, r := range s {
		w := runeColumns(r)
		if used+w > limit {
			break
		}

		sb.WriteRune(r)
		used += w
	}

	return sb.String(), used
}

func pad(text string, width int, alignment Alignment) (string, bool) {
	length := Columns(text)
	if length > width {
		text, length = truncate(text, width-1)
		text += ellipsis
		length++
	}

	diff := width - length

	switch alignment {
	case AlignLeft:
		return text + strings.Repeat(" ", diff), true
	case AlignRight:
		return strings.Repeat(" ", diff) + text, true
	case AlignCenter:
		left := diff / 2 //nolint:mnd

		return strings.Repeat(" ", left) + text + strings.Repeat(" ", diff-left), true
	default:
		return "", false
	}
}

func size() (string, error) {
	f, err := os.Open("/dev/tty")
	if err != nil {
		return "", err
	}

	defer func() {
		if err := f.Close(); err != nil {
			logger.Get().Debug("closing /dev/tty", "error", err)
		}
	}()

	// Outputs: "rows columns"
	cmd := exec.Command("stty", "size")
	cmd.Stdin = f

	out, err := cmd.Output()

	return string(out), err
}

func parseSize(input string) (int, int, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 { //nolint:mnd
		return 0, 0, fmt.Errorf("unexpected stty output %q", input) //nolint:err113
	}

	rows, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}

	cols, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}

	return rows, cols, nil
}

// TerminalDimensions returns (rows, cols, err).
func TerminalDimensions() (int, int, error) {
	output, err := size()
	if err != nil {
		return 0, 0, err
	}

	return parseSize(output)
}
