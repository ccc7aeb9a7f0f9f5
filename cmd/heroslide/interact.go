package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/hero-slider/cli"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/manifoldco/promptui"
)

const (
	actionNext = iota
	actionPrevious
	actionGoTo
	actionToggleAutoplay
	actionQuit
)

var menu = []string{ //nolint:gochecknoglobals
	actionNext:           "Next",
	actionPrevious:       "Previous",
	actionGoTo:           "Go to slide",
	actionToggleAutoplay: "Toggle autoplay",
	actionQuit:           "Quit",
}

// navigator is the part of the controller the menu drives.
type navigator interface {
	Next()
	Previous()
	GoTo(i int)
	SetAutoplay(enabled bool)
	State() slider.CycleState
	Len() int
}

type prompter interface {
	Select(label string, items []string) (int, error)
	PromptInt(label string, lo, hi int) (int, error)
	PromptConfirm(label string) (bool, error)
}

func interact(ctx context.Context, ctrl *slider.Controller, out io.Writer) error {
	return menuLoop(ctx, ctrl, cli.Terminal{}, out)
}

func menuLoop(ctx context.Context, nav navigator, p prompter, out io.Writer) error {
	for ctx.Err() == nil {
		action, err := p.Select("Hero slider", menu)
		if err != nil {
			return ignoreInterrupt(err)
		}

		switch action {
		case actionNext:
			nav.Next()
		case actionPrevious:
			nav.Previous()
		case actionGoTo:
			n, err := p.PromptInt(fmt.Sprintf("Slide (1-%d)", nav.Len()), 1, nav.Len())
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) {
					continue
				}

				return ignoreInterrupt(err)
			}

			nav.GoTo(n - 1)
		case actionToggleAutoplay:
			enabled := !nav.State().AutoplayEnabled
			nav.SetAutoplay(enabled)
			writeLine(out, fmt.Sprintf("autoplay %s", onOff(enabled)))
		case actionQuit:
			quit, err := p.PromptConfirm("Quit")
			if err != nil {
				return ignoreInterrupt(err)
			}

			if quit {
				return nil
			}
		}
	}

	return nil
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}

	return err
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
