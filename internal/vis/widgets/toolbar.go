package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/draw"
)

// Toolbar provides the imperative zoom controls.
type Toolbar struct {
	engine *engine.Engine
	scene  *draw.Scene

	zoomInBtn  widget.Clickable
	zoomOutBtn widget.Clickable
	resetBtn   widget.Clickable
	centerBtn  widget.Clickable
	stopBtn    widget.Clickable

	// One per scene element that can be zoomed to.
	elementBtns []widget.Clickable
	targets     []string
}

// NewToolbar creates a toolbar with a zoom-to button for each of targets.
func NewToolbar(eng *engine.Engine, scene *draw.Scene, targets ...string) *Toolbar {
	return &Toolbar{
		engine:      eng,
		scene:       scene,
		targets:     targets,
		elementBtns: make([]widget.Clickable, len(targets)),
	}
}

// ZoomTo zooms to the named scene element.
func (t *Toolbar) ZoomTo(name string) {
	e, ok := t.scene.Element(name)
	if !ok {
		return
	}
	t.engine.ZoomToElement(draw.ScreenRect(e, t.engine.Transform()))
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(44))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutZoomControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutElementControls(gtx, th)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, t.engine.Transform().String())
				label.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}
				return label.Layout(gtx)
			}),
		)
	})
}

func (t *Toolbar) layoutZoomControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.zoomOutBtn, "-", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.zoomInBtn, "+", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.resetBtn, "Reset", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.centerBtn, "Center", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.stopBtn, "Stop", t.engine.Animating())
		}),
	)
}

func (t *Toolbar) layoutElementControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	children := make([]layout.FlexChild, 0, 2*len(t.targets))
	for i, name := range t.targets {
		if i > 0 {
			children = append(children, layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout))
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.elementBtns[i], name, false)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = min(bg.R, 240) + 15
		bg.G = min(bg.G, 240) + 15
		bg.B = min(bg.B, 240) + 15
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	for t.zoomInBtn.Clicked(gtx) {
		t.engine.ZoomIn()
	}
	for t.zoomOutBtn.Clicked(gtx) {
		t.engine.ZoomOut()
	}
	for t.resetBtn.Clicked(gtx) {
		t.engine.ResetTransform()
	}
	for t.centerBtn.Clicked(gtx) {
		t.engine.CenterView()
	}
	for t.stopBtn.Clicked(gtx) {
		t.engine.CancelAnimation()
	}
	for i := range t.elementBtns {
		for t.elementBtns[i].Clicked(gtx) {
			t.ZoomTo(t.targets[i])
		}
	}
}
