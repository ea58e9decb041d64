// Package core defines the geometry shared by the pan/zoom engine.
package core

import (
	"fmt"
	"math"

	"gioui.org/f32"
	"golang.org/x/exp/constraints"
)

// Point is a position in screen or content pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Center returns the centre point of a box of this size anchored at the origin.
func (s Size) Center() Point {
	return Point{X: s.W / 2, Y: s.H / 2}
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Min  Point
	Size Size
}

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2}
}

// Transform is the affine (scale, translate) triple applied to content.
// Screen = Content*Scale + (X, Y).
type Transform struct {
	Scale float64
	X     float64
	Y     float64
}

// Identity is the untransformed state.
var Identity = Transform{Scale: 1}

// Position returns the translation part of t.
func (t Transform) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// Valid reports whether every component is finite.
func (t Transform) Valid() bool {
	return Finite(t.Scale) && Finite(t.X) && Finite(t.Y)
}

// ContentToScreen maps a content-space point to screen space.
func (t Transform) ContentToScreen(p Point) Point {
	return Point{X: p.X*t.Scale + t.X, Y: p.Y*t.Scale + t.Y}
}

// ScreenToContent maps a screen-space point to content space.
func (t Transform) ScreenToContent(p Point) Point {
	return Point{X: (p.X - t.X) / t.Scale, Y: (p.Y - t.Y) / t.Scale}
}

// ZoomAt returns the transform at scale s that keeps the content point
// under the screen point anchor fixed.
func (t Transform) ZoomAt(s float64, anchor Point) Transform {
	c := t.ScreenToContent(anchor)
	return Transform{
		Scale: s,
		X:     anchor.X - c.X*s,
		Y:     anchor.Y - c.Y*s,
	}
}

// Lerp interpolates linearly between t and u by p in [0,1].
func (t Transform) Lerp(u Transform, p float64) Transform {
	return Transform{
		Scale: t.Scale + (u.Scale-t.Scale)*p,
		X:     t.X + (u.X-t.X)*p,
		Y:     t.Y + (u.Y-t.Y)*p,
	}
}

// Affine returns t as a Gio transformation.
func (t Transform) Affine() f32.Affine2D {
	s := float32(t.Scale)
	return f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(s, s)).
		Offset(f32.Pt(float32(t.X), float32(t.Y)))
}

// String formats t the way a CSS transform property would express it.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", t.X, t.Y, t.Scale)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi]. When lo > hi the result is lo.
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
