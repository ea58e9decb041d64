package engine

import (
	"math"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// ActionOption overrides a configured default for one API call.
type ActionOption func(*action)

type action struct {
	step     *float64
	duration *time.Duration
	easing   string
	scale    *float64
}

// Step sets the zoom step of ZoomIn or ZoomOut.
func Step(v float64) ActionOption {
	return func(a *action) { a.step = &v }
}

// Duration sets the transition time. Zero applies the change at once.
func Duration(d time.Duration) ActionOption {
	return func(a *action) { a.duration = &d }
}

// Easing sets the transition curve by name.
func Easing(name string) ActionOption {
	return func(a *action) { a.easing = name }
}

// Scale sets the target scale of CenterView or ZoomToElement.
func Scale(v float64) ActionOption {
	return func(a *action) { a.scale = &v }
}

func resolve(opts []ActionOption) action {
	var a action
	for _, o := range opts {
		o(&a)
	}
	return a
}

// animate starts a named transition to target using a, falling back to
// the timing in def.
func (e *Engine) animate(name string, target core.Transform, a action, def config.Animation) {
	d := def.Time()
	if a.duration != nil {
		d = max(*a.duration, 0)
	}
	easing := def.AnimationType
	if a.easing != "" {
		easing = a.easing
	}
	e.sched.Animate(name, e.store.Transform(), e.clampTarget(target), d, easing, e.now())
}

// ZoomIn zooms toward the viewport centre by the configured or given step.
func (e *Engine) ZoomIn(opts ...ActionOption) {
	e.zoomBy("zoomIn", 1, resolve(opts))
}

// ZoomOut zooms away from the viewport centre.
func (e *Engine) ZoomOut(opts ...ActionOption) {
	e.zoomBy("zoomOut", -1, resolve(opts))
}

func (e *Engine) zoomBy(name string, dir float64, a action) {
	if e.closed {
		return
	}
	step := e.opts.ZoomStep()
	if a.step != nil {
		step = *a.step
	}
	cur := e.store.Transform()
	scale := e.opts.ClampScale(cur.Scale + dir*step)
	e.animate(name, cur.ZoomAt(scale, e.store.Viewport().Center()), a, e.opts.ZoomAnimation.Animation)
}

// SetTransform moves to the given state. Non-finite values are
// refused and leave the current state in place.
func (e *Engine) SetTransform(scale, x, y float64, opts ...ActionOption) {
	if e.closed {
		return
	}
	t := core.Transform{Scale: scale, X: x, Y: y}
	if !t.Valid() {
		e.commit(t)
		return
	}
	e.animate("setTransform", t, resolve(opts), e.opts.ZoomAnimation.Animation)
}

// ResetTransform returns to the configured initial state.
func (e *Engine) ResetTransform(opts ...ActionOption) {
	if e.closed {
		return
	}
	e.animate("reset", e.opts.Initial(), resolve(opts), e.opts.ZoomAnimation.Animation)
}

// CenterView centres the content at the given or current scale.
func (e *Engine) CenterView(opts ...ActionOption) {
	if e.closed {
		return
	}
	a := resolve(opts)
	scale := e.store.Transform().Scale
	if a.scale != nil {
		scale = *a.scale
	}
	scale = e.opts.ClampScale(scale)
	vp, content := e.store.Viewport(), e.store.Content()
	target := core.Transform{
		Scale: scale,
		X:     (vp.W - content.W*scale) / 2,
		Y:     (vp.H - content.H*scale) / 2,
	}
	e.animate("centerView", target, a, e.opts.AlignmentAnimation)
}

// ZoomToElement fits the screen rectangle r into the viewport and
// centres it.
func (e *Engine) ZoomToElement(r core.Rect, opts ...ActionOption) {
	if e.closed {
		return
	}
	vp := e.store.Viewport()
	if r.Size.Empty() || vp.Empty() {
		e.logger.Debug("zoomToElement ignored", "rect", r, "viewport", vp)
		return
	}
	a := resolve(opts)
	cur := e.store.Transform()

	origin := cur.ScreenToContent(r.Min)
	w, h := r.Size.W/cur.Scale, r.Size.H/cur.Scale
	center := origin.Add(core.Pt(w/2, h/2))

	scale := math.Min(vp.W/w, vp.H/h)
	if a.scale != nil {
		scale = *a.scale
	}
	scale = e.opts.ClampScale(scale)

	target := core.Transform{
		Scale: scale,
		X:     vp.W/2 - center.X*scale,
		Y:     vp.H/2 - center.Y*scale,
	}
	e.animate("zoomToElement", target, a, e.opts.AlignmentAnimation)
}

// CancelAnimation stops the running animation where it is.
func (e *Engine) CancelAnimation() {
	if e.closed {
		return
	}
	e.sched.Cancel()
}
