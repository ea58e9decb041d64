// Package anim drives eased transitions between transforms.
package anim

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Easing names accepted by Lookup.
const (
	Linear         = "linear"
	EaseOut        = "easeOut"
	EaseInQuad     = "easeInQuad"
	EaseOutQuad    = "easeOutQuad"
	EaseInOutQuad  = "easeInOutQuad"
	EaseInCubic    = "easeInCubic"
	EaseOutCubic   = "easeOutCubic"
	EaseInOutCubic = "easeInOutCubic"
	EaseInQuart    = "easeInQuart"
	EaseOutQuart   = "easeOutQuart"
	EaseInOutQuart = "easeInOutQuart"
	EaseInQuint    = "easeInQuint"
	EaseOutQuint   = "easeOutQuint"
	EaseInOutQuint = "easeInOutQuint"
)

var easings = map[string]Easing{
	Linear: func(t float64) float64 { return t },
	EaseOut: func(t float64) float64 {
		return -math.Cos(t*math.Pi)/2 + 0.5
	},
	EaseInQuad:  func(t float64) float64 { return t * t },
	EaseOutQuad: func(t float64) float64 { return t * (2 - t) },
	EaseInOutQuad: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EaseInCubic: func(t float64) float64 { return t * t * t },
	EaseOutCubic: func(t float64) float64 {
		t--
		return t*t*t + 1
	},
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	},
	EaseInQuart: func(t float64) float64 { return t * t * t * t },
	EaseOutQuart: func(t float64) float64 {
		t--
		return 1 - t*t*t*t
	},
	EaseInOutQuart: func(t float64) float64 {
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		t--
		return 1 - 8*t*t*t*t
	},
	EaseInQuint: func(t float64) float64 { return t * t * t * t * t },
	EaseOutQuint: func(t float64) float64 {
		t--
		return 1 + t*t*t*t*t
	},
	EaseInOutQuint: func(t float64) float64 {
		if t < 0.5 {
			return 16 * t * t * t * t * t
		}
		t--
		return 1 + 16*t*t*t*t*t
	},
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// Names lists every registered easing.
func Names() []string {
	return []string{
		Linear, EaseOut,
		EaseInQuad, EaseOutQuad, EaseInOutQuad,
		EaseInCubic, EaseOutCubic, EaseInOutCubic,
		EaseInQuart, EaseOutQuart, EaseInOutQuart,
		EaseInQuint, EaseOutQuint, EaseInOutQuint,
	}
}
