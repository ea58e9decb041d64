// Package interact translates Gio pointer and key events into engine input.
package interact

import (
	"slices"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/gesture"
)

const (
	// DoubleClickInterval is the longest gap between the clicks of a
	// mouse double click.
	DoubleClickInterval = 300 * time.Millisecond
	// clickSlop is how far the pointer may travel and still click.
	clickSlop = 4.0
)

// Input is the part of the engine the adapter drives.
type Input interface {
	Wheel(gesture.WheelEvent)
	PointerDown(gesture.PointerEvent)
	PointerMove(gesture.PointerEvent)
	PointerUp(gesture.PointerEvent)
	PointerLeave(gesture.PointerEvent)
	TouchStart(gesture.TouchEvent)
	TouchMove(gesture.TouchEvent)
	TouchEnd(gesture.TouchEvent)
	DoubleClick(gesture.PointerEvent)
	KeyDown(name string)
	KeyUp(name string)
	Blur()
}

type touch struct {
	id  pointer.ID
	pos core.Point
}

// Adapter converts raw Gio events for one viewport.
type Adapter struct {
	in Input
	// HitTest names the elements under a screen point, innermost first.
	HitTest func(core.Point) []string

	epoch   time.Time
	mods    key.Modifiers
	touches []touch

	press     core.Point
	moved     bool
	lastClick time.Time
	lastPos   core.Point
}

// NewAdapter returns an adapter feeding in.
func NewAdapter(in Input) *Adapter {
	return &Adapter{in: in}
}

// Pointer handles one pointer event received while the frame time is now.
func (a *Adapter) Pointer(ev pointer.Event, now time.Time) {
	a.syncModifiers(ev.Modifiers)
	if ev.Source == pointer.Touch {
		a.touch(ev, now)
		return
	}

	pe := gesture.PointerEvent{
		Position: point(ev.Position),
		Button:   button(ev.Buttons),
		Source:   gesture.Mouse,
		Time:     a.timeOf(ev, now),
	}
	pe.Targets = a.targets(pe.Position)

	switch ev.Kind {
	case pointer.Press:
		a.press, a.moved = pe.Position, false
		a.in.PointerDown(pe)
	case pointer.Drag:
		if pe.Position.Dist(a.press) > clickSlop {
			a.moved = true
		}
		a.in.PointerMove(pe)
	case pointer.Release:
		a.in.PointerUp(pe)
		a.click(pe)
	case pointer.Leave, pointer.Cancel:
		a.in.PointerLeave(pe)
	case pointer.Scroll:
		a.in.Wheel(gesture.WheelEvent{
			Position: pe.Position,
			DeltaX:   float64(ev.Scroll.X),
			DeltaY:   float64(ev.Scroll.Y),
			Ctrl:     ev.Modifiers.Contain(key.ModCtrl),
			Targets:  pe.Targets,
			Time:     pe.Time,
		})
	}
}

func (a *Adapter) click(pe gesture.PointerEvent) {
	if a.moved {
		return
	}
	if !a.lastClick.IsZero() &&
		pe.Time.Sub(a.lastClick) <= DoubleClickInterval &&
		pe.Position.Dist(a.lastPos) <= 2*clickSlop {
		a.lastClick = time.Time{}
		a.in.DoubleClick(pe)
		return
	}
	a.lastClick, a.lastPos = pe.Time, pe.Position
}

func (a *Adapter) touch(ev pointer.Event, now time.Time) {
	pos := point(ev.Position)
	te := func() gesture.TouchEvent {
		pts := make([]core.Point, len(a.touches))
		for i, t := range a.touches {
			pts[i] = t.pos
		}
		return gesture.TouchEvent{Touches: pts, Targets: a.targets(pos), Time: a.timeOf(ev, now)}
	}
	i := slices.IndexFunc(a.touches, func(t touch) bool { return t.id == ev.PointerID })

	switch ev.Kind {
	case pointer.Press:
		if i >= 0 {
			a.touches[i].pos = pos
		} else {
			a.touches = append(a.touches, touch{id: ev.PointerID, pos: pos})
		}
		a.in.TouchStart(te())
	case pointer.Drag, pointer.Move:
		if i < 0 {
			return
		}
		a.touches[i].pos = pos
		a.in.TouchMove(te())
	case pointer.Release:
		if i < 0 {
			return
		}
		a.touches = slices.Delete(a.touches, i, i+1)
		a.in.TouchEnd(te())
	case pointer.Cancel:
		a.touches = a.touches[:0]
		a.in.TouchEnd(te())
	}
}

// Key forwards key presses and releases.
func (a *Adapter) Key(ev key.Event) {
	switch ev.State {
	case key.Press:
		a.in.KeyDown(string(ev.Name))
	case key.Release:
		a.in.KeyUp(string(ev.Name))
	}
}

// Focus reports a focus change; losing focus releases every key.
func (a *Adapter) Focus(focused bool) {
	if !focused {
		a.mods = 0
		a.in.Blur()
	}
}

var modifierKeys = []struct {
	mod  key.Modifiers
	name key.Name
}{
	{key.ModCtrl, key.NameCtrl},
	{key.ModShift, key.NameShift},
	{key.ModAlt, key.NameAlt},
	{key.ModSuper, key.NameSuper},
}

// syncModifiers mirrors modifier state carried on pointer events, so
// activation keys work even when the key events went elsewhere.
func (a *Adapter) syncModifiers(m key.Modifiers) {
	if m == a.mods {
		return
	}
	for _, mk := range modifierKeys {
		was, is := a.mods.Contain(mk.mod), m.Contain(mk.mod)
		switch {
		case is && !was:
			a.in.KeyDown(string(mk.name))
		case was && !is:
			a.in.KeyUp(string(mk.name))
		}
	}
	a.mods = m
}

func (a *Adapter) targets(p core.Point) []string {
	if a.HitTest == nil {
		return nil
	}
	return a.HitTest(p)
}

// timeOf maps the event's relative timestamp onto wall time, anchored
// at the first event seen.
func (a *Adapter) timeOf(ev pointer.Event, now time.Time) time.Time {
	if ev.Time == 0 {
		return now
	}
	if a.epoch.IsZero() {
		a.epoch = now.Add(-ev.Time)
	}
	return a.epoch.Add(ev.Time)
}

func point(p f32.Point) core.Point {
	return core.Pt(float64(p.X), float64(p.Y))
}

func button(b pointer.Buttons) gesture.Button {
	switch {
	case b.Contain(pointer.ButtonPrimary):
		return gesture.ButtonPrimary
	case b.Contain(pointer.ButtonSecondary):
		return gesture.ButtonSecondary
	case b.Contain(pointer.ButtonTertiary):
		return gesture.ButtonTertiary
	}
	return gesture.ButtonNone
}
