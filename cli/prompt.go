package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrOutOfRange is reported by PromptInt for values outside the allowed range.
var ErrOutOfRange = errors.New("value out of range")

// Terminal is where prompts read and write. The zero value uses the
// process's stdin and stdout.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

func (t Terminal) stdin() io.ReadCloser {
	if t.In == nil {
		return os.Stdin
	}

	return t.In
}

func (t Terminal) stdout() io.WriteCloser {
	if t.Out == nil {
		return os.Stdout
	}

	return t.Out
}

// Select asks the user to pick one of items and returns its index.
func (t Terminal) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		Stdin:  t.stdin(),
		Stdout: t.stdout(),
	}

	idx, _, err := sel.Run()

	return idx, err
}

// PromptInt asks for an integer in [lo, hi].
func (t Terminal) PromptInt(label string, lo, hi int) (int, error) {
	validate := intInRange(lo, hi)

	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    t.stdin(),
		Stdout:   t.stdout(),
	}

	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	if err := validate(txt); err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(txt))
}

// PromptConfirm asks a yes/no question. Answering no is not an error.
func (t Terminal) PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     t.stdin(),
		Stdout:    t.stdout(),
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func intInRange(lo, hi int) promptui.ValidateFunc {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}

		if v < lo || v > hi {
			return fmt.Errorf("%w: %d is not between %d and %d", ErrOutOfRange, v, lo, hi)
		}

		return nil
	}
}
