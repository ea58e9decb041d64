package gesture

import (
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// WheelSession spans a burst of wheel events until the stop delay
// passes without another one.
type WheelSession struct {
	Start    time.Time
	Previous WheelEvent
	Events   int
}

// Wheel zooms by a fixed additive step per wheel event, anchored at
// the pointer.
type Wheel struct{}

// Allowed reports whether ev may zoom.
func (Wheel) Allowed(ctx Context, ev WheelEvent) bool {
	opts := ctx.Options()
	switch {
	case opts.Disabled, opts.Wheel.Disabled:
		return false
	case ctx.Panning():
		return false
	case ev.Ctrl && opts.Wheel.TouchPadDisabled:
		return false
	case !ev.Ctrl && opts.Wheel.WheelDisabled:
		return false
	case !ctx.Keys().Any(opts.Wheel.ActivationKeys):
		return false
	case Excluded(ev.Targets, opts.Wheel.Excluded):
		return false
	}
	return ev.DeltaY != 0
}

// Start opens a session with ev as its first event.
func (Wheel) Start(_ Context, ev WheelEvent) *WheelSession {
	return &WheelSession{Start: ev.Time, Previous: ev}
}

// Update returns the transform ev zooms to. Negative DeltaY (wheel
// away from the user) zooms in.
func (Wheel) Update(ctx Context, s *WheelSession, ev WheelEvent) core.Transform {
	s.Previous = ev
	s.Events++

	cur := ctx.Transform()
	opts := ctx.Options()
	dir := 1.0
	if ev.DeltaY > 0 {
		dir = -1
	}
	scale := opts.ClampScale(cur.Scale + dir*opts.WheelStep())
	if scale == cur.Scale {
		return cur
	}
	return cur.ZoomAt(scale, ev.Position)
}
