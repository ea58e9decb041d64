package engine

import (
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/gesture"
)

// Wheel zooms by one step around the pointer.
func (e *Engine) Wheel(ev gesture.WheelEvent) {
	if e.closed {
		return
	}
	w := gesture.Wheel{}
	if !w.Allowed(e, ev) {
		return
	}
	e.sched.Cancel()
	ev.Time = e.eventTime(ev.Time)

	if e.wheel == nil {
		e.wheel = w.Start(e, ev)
		e.rec.GestureStarted("wheel")
		e.emit(EventWheelStart, ev)
		e.emit(EventZoomStart, ev)
	}
	e.commit(w.Update(e, e.wheel, ev))
	e.emit(EventWheel, ev)
	e.emit(EventZoom, ev)
	e.wheelStop.arm(ev.Time.Add(WheelStopDelay))
}

func (e *Engine) stopWheel() {
	if e.wheel == nil {
		return
	}
	last := e.wheel.Previous
	e.wheel = nil
	e.emit(EventWheelStop, last)
	e.emit(EventZoomStop, last)
}

// PointerDown starts a mouse pan.
func (e *Engine) PointerDown(ev gesture.PointerEvent) {
	if e.closed || e.pinch != nil {
		return
	}
	p := gesture.Pan{}
	if !p.StartAllowed(e, ev) {
		return
	}
	e.sched.Cancel()
	e.pan = p.Start(e, ev.Position, ev.Source, e.eventTime(ev.Time))
	e.rec.GestureStarted("pan")
	e.emit(EventPanningStart, ev)
}

// PointerMove follows the pointer while a pan is active.
func (e *Engine) PointerMove(ev gesture.PointerEvent) {
	if e.closed || e.pan == nil {
		return
	}
	p := gesture.Pan{}
	if !p.Allowed(e) {
		return
	}
	e.commit(p.Update(e, e.pan, ev.Position, e.eventTime(ev.Time)))
	e.emit(EventPanning, ev)
}

// PointerUp ends a pan, starting inertia when the release was fast.
func (e *Engine) PointerUp(ev gesture.PointerEvent) {
	if e.closed || e.pan == nil {
		return
	}
	e.endPan(ev, e.eventTime(ev.Time), true)
}

// PointerLeave ends a pan like PointerUp.
func (e *Engine) PointerLeave(ev gesture.PointerEvent) {
	e.PointerUp(ev)
}

func (e *Engine) endPan(src any, now time.Time, inertia bool) {
	s := e.pan
	e.pan = nil
	if inertia {
		if target, d, ok := (gesture.Pan{}).Stop(e, s, now); ok {
			e.sched.Animate("velocity", e.store.Transform(), target, d,
				e.opts.VelocityAnimation.AnimationType, now)
		}
	}
	e.emit(EventPanningStop, src)
}

// TouchStart handles a new finger. One finger pans or completes a
// double tap; a second finger starts a pinch.
func (e *Engine) TouchStart(ev gesture.TouchEvent) {
	if e.closed || e.opts.Disabled {
		return
	}
	now := e.eventTime(ev.Time)

	switch n := len(ev.Touches); {
	case n == 1:
		if e.doubleTap.pending(now) && (gesture.DoubleClick{}).Allowed(e, ev.Targets) {
			e.doubleTap.clear()
			e.DoubleClick(gesture.PointerEvent{
				Position: ev.Touches[0],
				Source:   gesture.Touch,
				Targets:  ev.Targets,
				Time:     now,
			})
			return
		}
		e.doubleTap.arm(now.Add(DoubleTapWindow))

		pe := gesture.PointerEvent{
			Position: ev.Touches[0],
			Button:   gesture.ButtonPrimary,
			Source:   gesture.Touch,
			Targets:  ev.Targets,
			Time:     now,
		}
		p := gesture.Pan{}
		if e.pan != nil || !p.StartAllowed(e, pe) {
			return
		}
		e.sched.Cancel()
		e.pan = p.Start(e, pe.Position, gesture.Touch, now)
		e.rec.GestureStarted("pan")
		e.emit(EventPanningStart, ev)
	case n >= 2:
		e.startPinch(ev)
		if e.pinch == nil && e.pan != nil {
			(gesture.Pan{}).Rebase(e, e.pan, ev.Touches[0], now)
		}
	}
}

func (e *Engine) startPinch(ev gesture.TouchEvent) {
	if e.pinch != nil {
		return
	}
	pin := gesture.Pinch{}
	if !pin.Allowed(e, ev) {
		return
	}
	if e.pan != nil {
		e.endPan(ev, e.eventTime(ev.Time), false)
	}
	s := pin.Start(e, ev)
	if s == nil {
		return
	}
	e.sched.Cancel()
	e.pinch = s
	e.rec.GestureStarted("pinch")
	e.emit(EventPinchingStart, ev)
	e.emit(EventZoomStart, ev)
}

// TouchMove updates the active pinch or touch pan.
func (e *Engine) TouchMove(ev gesture.TouchEvent) {
	if e.closed {
		return
	}
	now := e.eventTime(ev.Time)

	switch {
	case e.pinch != nil:
		if t, ok := (gesture.Pinch{}).Update(e, e.pinch, ev); ok {
			e.commit(t)
			e.emit(EventPinching, ev)
			e.emit(EventZoom, ev)
		}
	case len(ev.Touches) >= 2:
		e.startPinch(ev)
	case e.pan != nil && len(ev.Touches) == 1:
		p := gesture.Pan{}
		if !p.Allowed(e) {
			return
		}
		e.commit(p.Update(e, e.pan, ev.Touches[0], now))
		e.emit(EventPanning, ev)
	}
}

// TouchEnd handles a lifted finger. ev lists the remaining touches.
// A pinch left with one finger continues as a pan from the current
// position.
func (e *Engine) TouchEnd(ev gesture.TouchEvent) {
	if e.closed {
		return
	}
	now := e.eventTime(ev.Time)

	if e.pinch != nil {
		if len(ev.Touches) >= 2 {
			return
		}
		e.pinch = nil
		e.emit(EventPinchingStop, ev)
		e.emit(EventZoomStop, ev)
		p := gesture.Pan{}
		if len(ev.Touches) == 1 && p.Allowed(e) {
			e.pan = p.Start(e, ev.Touches[0], gesture.Touch, now)
		}
		return
	}
	if e.pan == nil {
		return
	}
	if len(ev.Touches) == 0 {
		e.endPan(ev, now, true)
		return
	}
	// The finger the pan follows may have changed.
	(gesture.Pan{}).Rebase(e, e.pan, ev.Touches[0], now)
}

// DoubleClick applies the configured double-click mode at the pointer.
func (e *Engine) DoubleClick(ev gesture.PointerEvent) {
	if e.closed {
		return
	}
	dc := gesture.DoubleClick{}
	if !dc.Allowed(e, ev.Targets) {
		return
	}
	now := e.eventTime(ev.Time)
	if e.pan != nil {
		e.endPan(ev, now, false)
	}
	target := e.clampTarget(dc.Target(e, ev.Position))
	d := e.opts.DoubleClick.AnimationTime
	if d < 0 {
		d = 0
	}
	e.rec.GestureStarted("doubleClick")
	e.sched.Animate("doubleClick", e.store.Transform(), target, d,
		e.opts.DoubleClick.AnimationType, now)
}

// KeyDown records a held key.
func (e *Engine) KeyDown(name string) {
	if e.closed {
		return
	}
	e.keys.Press(name)
}

// KeyUp releases a key.
func (e *Engine) KeyUp(name string) {
	if e.closed {
		return
	}
	e.keys.Release(name)
}

// Blur forgets held keys and ends any pan, as when the window loses
// focus.
func (e *Engine) Blur() {
	if e.closed {
		return
	}
	e.keys.Reset()
	if e.pan != nil {
		e.endPan(nil, e.now(), false)
	}
}
