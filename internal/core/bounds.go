package core

import "math"

// Bounds is the admissible range of the translation at one scale.
// Unbounded edges are ±Inf.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Unbounded allows any position.
var Unbounded = Bounds{
	MinX: math.Inf(-1), MaxX: math.Inf(1),
	MinY: math.Inf(-1), MaxY: math.Inf(1),
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Inverted reports whether either axis has its minimum above its maximum.
func (b Bounds) Inverted() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Clamp moves p to the nearest point inside b.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: Clamp(p.X, b.MinX, b.MaxX),
		Y: Clamp(p.Y, b.MinY, b.MaxY),
	}
}

// BoundsOptions carries the configuration ComputeBounds depends on.
type BoundsOptions struct {
	LimitToBounds   bool
	CenterZoomedOut bool

	// Explicit edges replace the computed ones when set.
	MinPositionX, MaxPositionX *float64
	MinPositionY, MaxPositionY *float64
}

// ComputeBounds returns the translation range for content of the given
// size shown in viewport at scale.
func ComputeBounds(scale float64, viewport, content Size, opts BoundsOptions) Bounds {
	if !opts.LimitToBounds {
		return Unbounded
	}

	minX, maxX := axisBounds(viewport.W, content.W*scale, opts.CenterZoomedOut)
	minY, maxY := axisBounds(viewport.H, content.H*scale, opts.CenterZoomedOut)

	b := Bounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	override(&b.MinX, opts.MinPositionX)
	override(&b.MaxX, opts.MaxPositionX)
	override(&b.MinY, opts.MinPositionY)
	override(&b.MaxY, opts.MaxPositionY)
	return b
}

func axisBounds(viewport, scaled float64, center bool) (lo, hi float64) {
	diff := viewport - scaled
	if diff < 0 {
		// Content overflows: its far edge may not pull past the viewport edge.
		return diff, 0
	}
	if center {
		return diff / 2, diff / 2
	}
	return 0, 0
}

func override(dst *float64, v *float64) {
	if v != nil && Finite(*v) {
		*dst = *v
	}
}
