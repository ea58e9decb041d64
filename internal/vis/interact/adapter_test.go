package interact

import (
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/gesture"
)

type call struct {
	name    string
	pointer gesture.PointerEvent
	wheel   gesture.WheelEvent
	touch   gesture.TouchEvent
	key     string
}

type recorder struct{ calls []call }

func (r *recorder) add(c call) { r.calls = append(r.calls, c) }

func (r *recorder) Wheel(ev gesture.WheelEvent)          { r.add(call{name: "wheel", wheel: ev}) }
func (r *recorder) PointerDown(ev gesture.PointerEvent)  { r.add(call{name: "down", pointer: ev}) }
func (r *recorder) PointerMove(ev gesture.PointerEvent)  { r.add(call{name: "move", pointer: ev}) }
func (r *recorder) PointerUp(ev gesture.PointerEvent)    { r.add(call{name: "up", pointer: ev}) }
func (r *recorder) PointerLeave(ev gesture.PointerEvent) { r.add(call{name: "leave", pointer: ev}) }
func (r *recorder) TouchStart(ev gesture.TouchEvent)     { r.add(call{name: "touchStart", touch: ev}) }
func (r *recorder) TouchMove(ev gesture.TouchEvent)      { r.add(call{name: "touchMove", touch: ev}) }
func (r *recorder) TouchEnd(ev gesture.TouchEvent)       { r.add(call{name: "touchEnd", touch: ev}) }
func (r *recorder) DoubleClick(ev gesture.PointerEvent)  { r.add(call{name: "double", pointer: ev}) }
func (r *recorder) KeyDown(name string)                  { r.add(call{name: "keyDown", key: name}) }
func (r *recorder) KeyUp(name string)                    { r.add(call{name: "keyUp", key: name}) }
func (r *recorder) Blur()                                { r.add(call{name: "blur"}) }

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.name
	}
	return out
}

var frame = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func mouse(kind pointer.Kind, x, y float32, ms int) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Buttons:  pointer.ButtonPrimary,
		Position: f32.Pt(x, y),
		Time:     time.Duration(ms) * time.Millisecond,
	}
}

func finger(kind pointer.Kind, id pointer.ID, x, y float32) pointer.Event {
	return pointer.Event{
		Kind:      kind,
		Source:    pointer.Touch,
		PointerID: id,
		Position:  f32.Pt(x, y),
		Time:      time.Millisecond,
	}
}

func TestMouseDragAndTime(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	a.Pointer(mouse(pointer.Press, 10, 20, 1000), frame)
	a.Pointer(mouse(pointer.Drag, 40, 20, 1016), frame)
	a.Pointer(mouse(pointer.Release, 40, 20, 1032), frame)

	require.Equal(t, []string{"down", "move", "up"}, rec.names())
	assert.Equal(t, gesture.ButtonPrimary, rec.calls[0].pointer.Button)
	assert.Equal(t, core.Pt(40, 20), rec.calls[1].pointer.Position)
	assert.Equal(t, 16*time.Millisecond, rec.calls[1].pointer.Time.Sub(rec.calls[0].pointer.Time))
	assert.Equal(t, frame, rec.calls[0].pointer.Time)
}

func TestDoubleClick(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	a.Pointer(mouse(pointer.Press, 10, 10, 0), frame)
	a.Pointer(mouse(pointer.Release, 10, 10, 50), frame)
	a.Pointer(mouse(pointer.Press, 11, 10, 150), frame)
	a.Pointer(mouse(pointer.Release, 11, 10, 200), frame)

	assert.Equal(t, []string{"down", "up", "down", "up", "double"}, rec.names())
}

func TestDraggedClicksAreNotDouble(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	a.Pointer(mouse(pointer.Press, 10, 10, 0), frame)
	a.Pointer(mouse(pointer.Release, 10, 10, 50), frame)
	a.Pointer(mouse(pointer.Press, 10, 10, 100), frame)
	a.Pointer(mouse(pointer.Drag, 60, 10, 120), frame)
	a.Pointer(mouse(pointer.Release, 60, 10, 150), frame)

	assert.NotContains(t, rec.names(), "double")
}

func TestSlowClicksAreNotDouble(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	a.Pointer(mouse(pointer.Press, 10, 10, 0), frame)
	a.Pointer(mouse(pointer.Release, 10, 10, 50), frame)
	a.Pointer(mouse(pointer.Press, 10, 10, 500), frame)
	a.Pointer(mouse(pointer.Release, 10, 10, 550), frame)

	assert.NotContains(t, rec.names(), "double")
}

func TestScrollBecomesWheel(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)
	a.HitTest = func(core.Point) []string { return []string{"card"} }

	ev := mouse(pointer.Scroll, 5, 6, 0)
	ev.Scroll = f32.Pt(0, -3)
	ev.Modifiers = key.ModCtrl
	a.Pointer(ev, frame)

	require.Equal(t, []string{"keyDown", "wheel"}, rec.names())
	assert.Equal(t, string(key.NameCtrl), rec.calls[0].key)
	w := rec.calls[1].wheel
	assert.Equal(t, -3.0, w.DeltaY)
	assert.True(t, w.Ctrl)
	assert.Equal(t, []string{"card"}, w.Targets)
}

func TestTouchesTrackedByID(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	a.Pointer(finger(pointer.Press, 1, 10, 10), frame)
	a.Pointer(finger(pointer.Press, 2, 50, 10), frame)
	a.Pointer(finger(pointer.Drag, 2, 60, 10), frame)
	a.Pointer(finger(pointer.Release, 1, 10, 10), frame)
	a.Pointer(finger(pointer.Release, 2, 60, 10), frame)

	require.Equal(t, []string{"touchStart", "touchStart", "touchMove", "touchEnd", "touchEnd"}, rec.names())
	assert.Len(t, rec.calls[1].touch.Touches, 2)
	assert.Equal(t, []core.Point{core.Pt(10, 10), core.Pt(60, 10)}, rec.calls[2].touch.Touches)
	assert.Equal(t, []core.Point{core.Pt(60, 10)}, rec.calls[3].touch.Touches)
	assert.Empty(t, rec.calls[4].touch.Touches)
}

func TestModifierSyncAndBlur(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	ev := mouse(pointer.Press, 0, 0, 0)
	ev.Modifiers = key.ModShift
	a.Pointer(ev, frame)
	ev = mouse(pointer.Release, 0, 0, 10)
	a.Pointer(ev, frame)

	assert.Equal(t, []string{"keyDown", "down", "keyUp", "up"}, rec.names())

	a.Key(key.Event{Name: "R", State: key.Press})
	a.Focus(false)
	assert.Equal(t, "R", rec.calls[4].key)
	assert.Equal(t, "blur", rec.calls[5].name)
}
