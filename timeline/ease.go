package timeline

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownEase is returned by ParseEase for names it does not recognise.
var ErrUnknownEase = errors.New("unknown ease")

// Ease maps linear progress in [0, 1] to eased progress. Inputs outside the
// range are clamped.
type Ease func(p float64) float64

// Linear is the identity ease ("none").
func Linear(p float64) float64 {
	return clamp01(p)
}

// Power1In accelerates from rest ("power1.in", quadratic).
func Power1In(p float64) float64 {
	p = clamp01(p)

	return p * p
}

// Power2Out decelerates to rest ("power2.out", cubic).
func Power2Out(p float64) float64 {
	return 1 - math.Pow(1-clamp01(p), 3)
}

// Power3Out decelerates to rest more sharply ("power3.out", quartic).
func Power3Out(p float64) float64 {
	return 1 - math.Pow(1-clamp01(p), 4)
}

// ParseEase resolves a name such as "power2.out". The empty string and
// "none" mean Linear.
func ParseEase(name string) (Ease, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "linear":
		return Linear, nil
	case "power1.in":
		return Power1In, nil
	case "power2.out":
		return Power2Out, nil
	case "power3.out":
		return Power3Out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
}

func clamp01(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	default:
		return p
	}
}
