// Package widgets provides the Gio widgets of the pan/zoom demo.
package widgets

import (
	"image"
	"image/color"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/draw"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/interact"
)

// Viewport shows a scene through the engine's transform and feeds it
// pointer input.
type Viewport struct {
	engine  *engine.Engine
	scene   *draw.Scene
	adapter *interact.Adapter

	// Hovered names the topmost element under the mouse.
	Hovered string
}

// NewViewport creates a viewport over scene driven by eng.
func NewViewport(eng *engine.Engine, scene *draw.Scene) *Viewport {
	v := &Viewport{
		engine:  eng,
		scene:   scene,
		adapter: interact.NewAdapter(eng),
	}
	v.adapter.HitTest = v.hitTest
	return v
}

// Adapter returns the input adapter, for key and focus forwarding.
func (v *Viewport) Adapter() *interact.Adapter {
	return v.adapter
}

func (v *Viewport) hitTest(p core.Point) []string {
	return v.scene.HitTest(v.engine.Transform().ScreenToContent(p))
}

// Layout renders the viewport.
func (v *Viewport) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, size.X, size.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	v.engine.Resize(core.Sz(float64(size.X), float64(size.Y)), v.scene.Size)
	v.engine.Mount()

	v.handlePointerEvents(gtx)

	t := v.engine.Transform()
	stack := op.Affine(t.Affine()).Push(gtx.Ops)
	v.scene.Draw(gtx, v.Hovered)
	stack.Pop()

	return layout.Dimensions{Size: size}
}

func (v *Viewport) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	cursor := pointer.CursorDefault
	if v.engine.Panning() {
		cursor = pointer.CursorGrabbing
	}
	cursor.Add(gtx.Ops)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move | pointer.Leave | pointer.Cancel,
			ScrollX: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if pe.Kind == pointer.Move && pe.Source == pointer.Mouse {
			v.Hovered = ""
			if hits := v.hitTest(core.Pt(float64(pe.Position.X), float64(pe.Position.Y))); len(hits) > 0 {
				v.Hovered = hits[0]
			}
		}
		v.adapter.Pointer(pe, gtx.Now)
	}
}
