// Package draw renders the demo content shown inside the viewport.
//
// Everything here draws in content coordinates; the viewport widget
// pushes the engine transform before calling in.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// Shape selects how an element is drawn.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Palette
var (
	ColorBoard   = color.NRGBA{R: 32, G: 36, B: 42, A: 255}
	ColorGrid    = color.NRGBA{R: 48, G: 54, B: 62, A: 255}
	ColorCard    = color.NRGBA{R: 100, G: 120, B: 140, A: 255}
	ColorAccent  = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorWarm    = color.NRGBA{R: 255, G: 150, B: 100, A: 255}
	ColorCool    = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorOutline = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
)

// Element is a named shape on the board.
type Element struct {
	Name  string
	Shape Shape
	Rect  core.Rect
	Color color.NRGBA
}

// Contains reports whether the content point p lies inside e.
func (e Element) Contains(p core.Point) bool {
	switch e.Shape {
	case ShapeCircle:
		r := math.Min(e.Rect.Size.W, e.Rect.Size.H) / 2
		return p.Dist(e.Rect.Center()) <= r
	default:
		return p.X >= e.Rect.Min.X && p.X <= e.Rect.Min.X+e.Rect.Size.W &&
			p.Y >= e.Rect.Min.Y && p.Y <= e.Rect.Min.Y+e.Rect.Size.H
	}
}

// Scene is the content drawn under the transform.
type Scene struct {
	Size     core.Size
	GridStep float64
	Elements []Element
}

// DemoScene returns a board with a few named elements to zoom to.
func DemoScene() *Scene {
	return &Scene{
		Size:     core.Sz(1600, 1000),
		GridStep: 50,
		Elements: []Element{
			{Name: "card-1", Rect: core.Rect{Min: core.Pt(150, 150), Size: core.Sz(400, 250)}, Color: ColorCard},
			{Name: "card-2", Rect: core.Rect{Min: core.Pt(900, 200), Size: core.Sz(500, 300)}, Color: ColorCard},
			{Name: "card-3", Rect: core.Rect{Min: core.Pt(400, 600), Size: core.Sz(700, 250)}, Color: ColorCard},
			{Name: "dot-1", Shape: ShapeCircle, Rect: core.Rect{Min: core.Pt(200, 200), Size: core.Sz(80, 80)}, Color: ColorCool},
			{Name: "dot-2", Shape: ShapeCircle, Rect: core.Rect{Min: core.Pt(1250, 380), Size: core.Sz(60, 60)}, Color: ColorWarm},
			{Name: "badge", Rect: core.Rect{Min: core.Pt(450, 650), Size: core.Sz(120, 40)}, Color: ColorAccent},
		},
	}
}

// Element returns the element called name.
func (s *Scene) Element(name string) (Element, bool) {
	for _, e := range s.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// HitTest names the elements under the content point p, topmost first.
func (s *Scene) HitTest(p core.Point) []string {
	var out []string
	for i := len(s.Elements) - 1; i >= 0; i-- {
		if s.Elements[i].Contains(p) {
			out = append(out, s.Elements[i].Name)
		}
	}
	return out
}

// ScreenRect maps the element's content rectangle to screen space.
func ScreenRect(e Element, t core.Transform) core.Rect {
	return core.Rect{
		Min:  t.ContentToScreen(e.Rect.Min),
		Size: core.Sz(e.Rect.Size.W*t.Scale, e.Rect.Size.H*t.Scale),
	}
}

// Draw renders the board, its grid and every element. highlight names
// an element to outline, or is empty.
func (s *Scene) Draw(gtx layout.Context, highlight string) {
	board := image.Rect(0, 0, int(s.Size.W), int(s.Size.H))
	paint.FillShape(gtx.Ops, ColorBoard, clip.Rect(board).Op())
	DrawGrid(gtx, s.Size, s.GridStep, ColorGrid)

	for _, e := range s.Elements {
		switch e.Shape {
		case ShapeCircle:
			c := e.Rect.Center()
			r := float32(math.Min(e.Rect.Size.W, e.Rect.Size.H) / 2)
			DrawCircle(gtx, float32(c.X), float32(c.Y), r, e.Color)
		default:
			paint.FillShape(gtx.Ops, e.Color, clip.Rect(rectOf(e.Rect)).Op())
		}
		if e.Name == highlight {
			DrawOutline(gtx, e.Rect, 3, ColorOutline)
		}
	}
}

// DrawGrid draws grid lines every step content pixels over size.
func DrawGrid(gtx layout.Context, size core.Size, step float64, col color.NRGBA) {
	if step <= 0 {
		return
	}
	w, h := int(size.W), int(size.H)
	for x := 0.0; x <= size.W; x += step {
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(int(x), 0, int(x)+1, h)).Op())
	}
	for y := 0.0; y <= size.H; y += step {
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(0, int(y), w, int(y)+1)).Op())
	}
}

// DrawCircle draws a filled circle.
func DrawCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))

	segments := 32
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		path.LineTo(f32.Pt(
			cx+radius*float32(math.Cos(angle)),
			cy+radius*float32(math.Sin(angle)),
		))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawOutline strokes the border of r.
func DrawOutline(gtx layout.Context, r core.Rect, width float32, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  clip.RRect{Rect: rectOf(r)}.Path(gtx.Ops),
		Width: width,
	}.Op())
}

func rectOf(r core.Rect) image.Rectangle {
	return image.Rect(
		int(r.Min.X), int(r.Min.Y),
		int(r.Min.X+r.Size.W), int(r.Min.Y+r.Size.H),
	)
}
