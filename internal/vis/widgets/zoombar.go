package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
)

// ZoomBar is a slider over the configured scale range.
type ZoomBar struct {
	engine   *engine.Engine
	dragging bool
}

// NewZoomBar creates a zoom slider for eng.
func NewZoomBar(eng *engine.Engine) *ZoomBar {
	return &ZoomBar{engine: eng}
}

// progressOf maps scale onto [0,1] within [lo, hi].
func progressOf(scale, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return core.Clamp((scale-lo)/(hi-lo), 0, 1)
}

// scaleAt is the inverse of progressOf.
func scaleAt(progress, lo, hi float64) float64 {
	return lo + core.Clamp(progress, 0, 1)*(hi-lo)
}

// Layout renders the zoom bar.
func (z *ZoomBar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(48))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	margin := 20
	trackWidth := gtx.Constraints.Max.X - 2*margin
	z.handlePointerEvents(gtx, height, margin, trackWidth)

	trackY := height / 2
	trackHeight := 6

	trackRect := image.Rect(margin, trackY-trackHeight/2, margin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	lo, hi := z.engine.Options().ScaleRange()
	scale := z.engine.Transform().Scale
	fillWidth := int(float64(trackWidth) * progressOf(scale, lo, hi))
	if fillWidth > 0 {
		fillRect := image.Rect(margin, trackY-trackHeight/2, margin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	knobX := margin + fillWidth
	knob := 12
	knobRect := image.Rect(knobX-knob/2, trackY-knob/2, knobX+knob/2, trackY+knob/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(knobRect).Op())

	z.drawLabels(gtx, th, lo, hi, scale)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

func (z *ZoomBar) drawLabels(gtx layout.Context, th *material.Theme, lo, hi, scale float64) {
	minLabel := material.Label(th, 12, fmt.Sprintf("%.0f%%", lo*100))
	minLabel.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	minLabel.Alignment = text.Start

	cur := material.Label(th, 12, fmt.Sprintf("%.0f%%", scale*100))
	cur.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	maxLabel := material.Label(th, 12, fmt.Sprintf("%.0f%%", hi*100))
	maxLabel.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	maxLabel.Alignment = text.End

	layout.Inset{Top: unit.Dp(2), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(minLabel.Layout),
			layout.Rigid(cur.Layout),
			layout.Rigid(maxLabel.Layout),
		)
	})
}

func (z *ZoomBar) handlePointerEvents(gtx layout.Context, height, margin, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, z)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: z,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			z.dragging = true
			z.seek(pe.Position.X, margin, trackWidth)
		case pointer.Drag:
			if z.dragging {
				z.seek(pe.Position.X, margin, trackWidth)
			}
		case pointer.Release, pointer.Cancel:
			z.dragging = false
		}
	}
}

// seek zooms around the viewport centre to the scale under screenX.
func (z *ZoomBar) seek(screenX float32, margin, trackWidth int) {
	if trackWidth <= 0 {
		return
	}
	lo, hi := z.engine.Options().ScaleRange()
	s := scaleAt((float64(screenX)-float64(margin))/float64(trackWidth), lo, hi)
	t := z.engine.Transform().ZoomAt(s, z.engine.Viewport().Center())
	z.engine.SetTransform(t.Scale, t.X, t.Y, engine.Duration(0))
}
