package gesture

import (
	"math"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// PinchSession tracks a two-finger zoom.
type PinchSession struct {
	StartDistance float64
	StartScale    float64
	// Anchor is the content point that stays under the finger midpoint.
	Anchor   core.Point
	Midpoint core.Point
}

// Pinch scales by the ratio of finger distances, raised to the
// configured step.
type Pinch struct{}

// Allowed reports whether ev may begin a pinch.
func (Pinch) Allowed(ctx Context, ev TouchEvent) bool {
	opts := ctx.Options()
	if opts.Disabled || opts.Pinch.Disabled || len(ev.Touches) < 2 {
		return false
	}
	return !Excluded(ev.Targets, opts.Pinch.Excluded)
}

// Start opens a session from the first two touches. It returns nil
// when the fingers coincide.
func (Pinch) Start(ctx Context, ev TouchEvent) *PinchSession {
	a, b := ev.Touches[0], ev.Touches[1]
	dist := a.Dist(b)
	if dist < 1e-6 {
		return nil
	}
	cur := ctx.Transform()
	mid := a.Mid(b)
	return &PinchSession{
		StartDistance: dist,
		StartScale:    cur.Scale,
		Anchor:        cur.ScreenToContent(mid),
		Midpoint:      mid,
	}
}

// Update returns the transform for the current finger positions.
func (Pinch) Update(ctx Context, s *PinchSession, ev TouchEvent) (core.Transform, bool) {
	if len(ev.Touches) < 2 {
		return core.Transform{}, false
	}
	a, b := ev.Touches[0], ev.Touches[1]
	ratio := a.Dist(b) / s.StartDistance
	if !core.Finite(ratio) || ratio <= 0 {
		return core.Transform{}, false
	}

	opts := ctx.Options()
	scale := opts.ClampScale(s.StartScale * math.Pow(ratio, opts.PinchStep()))
	s.Midpoint = a.Mid(b)
	pos := s.Midpoint.Sub(s.Anchor.Mul(scale))
	return core.Transform{Scale: scale, X: pos.X, Y: pos.Y}, true
}
