package gesture

import (
	"math"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// minInertiaSpeed is the release speed, in px/ms, below which a pan
// stops dead.
const minInertiaSpeed = 0.01

// PanSession tracks one drag.
type PanSession struct {
	Source Source
	// Offset is the pointer position minus the translation at start.
	Offset   core.Point
	Last     core.Point
	LastTime time.Time
	Velocity VelocityTracker
}

// Pan translates the content with the pointer.
type Pan struct{}

// Allowed reports whether panning is enabled and its activation keys
// are held.
func (Pan) Allowed(ctx Context) bool {
	opts := ctx.Options()
	if opts.Disabled || opts.Panning.Disabled {
		return false
	}
	return ctx.Keys().Any(opts.Panning.ActivationKeys)
}

// StartAllowed reports whether ev may begin a pan.
func (p Pan) StartAllowed(ctx Context, ev PointerEvent) bool {
	if !p.Allowed(ctx) {
		return false
	}
	if ev.Source == Mouse && ev.Button != ButtonPrimary {
		return false
	}
	return !Excluded(ev.Targets, ctx.Options().Panning.Excluded)
}

// Start opens a session with the pointer at pos.
func (Pan) Start(ctx Context, pos core.Point, src Source, now time.Time) *PanSession {
	return &PanSession{
		Source:   src,
		Offset:   pos.Sub(ctx.Transform().Position()),
		Last:     pos,
		LastTime: now,
	}
}

// Rebase moves the session onto a pointer at pos without moving the
// content. Samples from the previous pointer are dropped.
func (Pan) Rebase(ctx Context, s *PanSession, pos core.Point, now time.Time) {
	s.Offset = pos.Sub(ctx.Transform().Position())
	s.Last, s.LastTime = pos, now
	s.Velocity.Reset()
}

// Update returns the transform that follows the pointer to pos.
func (Pan) Update(ctx Context, s *PanSession, pos core.Point, now time.Time) core.Transform {
	opts := ctx.Options()
	cur := ctx.Transform()

	d := pos.Sub(s.Last)
	next := pos.Sub(s.Offset)
	if opts.Panning.LockAxisX {
		next.X, d.X = cur.X, 0
	}
	if opts.Panning.LockAxisY {
		next.Y, d.Y = cur.Y, 0
	}
	if dt := now.Sub(s.LastTime); dt > 0 {
		s.Velocity.Add(d.X, d.Y, dt, now)
	}
	s.Last, s.LastTime = pos, now

	return core.Transform{Scale: cur.Scale, X: next.X, Y: next.Y}
}

// Stop ends the session and returns the inertia target and duration.
// ok is false when the release was too slow or inertia is off.
func (Pan) Stop(ctx Context, s *PanSession, now time.Time) (target core.Transform, d time.Duration, ok bool) {
	opts := ctx.Options()
	if !opts.VelocityEnabled() {
		return core.Transform{}, 0, false
	}
	v := s.Velocity.Estimate(now)
	speed := math.Hypot(v.X, v.Y)
	if speed < minInertiaSpeed {
		return core.Transform{}, 0, false
	}

	full := opts.VelocityAnimation.Time()
	if full <= 0 {
		return core.Transform{}, 0, false
	}
	d = time.Duration(float64(full) * math.Min(1, speed*opts.Sensitivity()))
	ms := float64(d) / float64(time.Millisecond)

	// easeOutQuad starts at twice the mean speed, so the distance
	// covered is v*T/2.
	cur := ctx.Transform()
	pos := cur.Position().Add(v.Mul(ms / 2))
	pos = ctx.BoundsAt(cur.Scale).Clamp(pos)
	if pos == cur.Position() {
		return core.Transform{}, 0, false
	}
	return core.Transform{Scale: cur.Scale, X: pos.X, Y: pos.Y}, d, true
}
