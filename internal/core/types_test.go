package core

import (
	"math"
	"testing"
)

func TestComputeBounds(t *testing.T) {
	viewport := Sz(400, 300)

	tests := []struct {
		name    string
		scale   float64
		content Size
		opts    BoundsOptions
		want    Bounds
	}{
		{
			name:    "content fills viewport",
			scale:   1,
			content: Sz(400, 300),
			opts:    BoundsOptions{LimitToBounds: true},
			want:    Bounds{},
		},
		{
			name:    "zoomed in overflows",
			scale:   2,
			content: Sz(400, 300),
			opts:    BoundsOptions{LimitToBounds: true},
			want:    Bounds{MinX: -400, MaxX: 0, MinY: -300, MaxY: 0},
		},
		{
			name:    "zoomed out pinned",
			scale:   0.5,
			content: Sz(400, 300),
			opts:    BoundsOptions{LimitToBounds: true},
			want:    Bounds{},
		},
		{
			name:    "zoomed out centred",
			scale:   0.5,
			content: Sz(400, 300),
			opts:    BoundsOptions{LimitToBounds: true, CenterZoomedOut: true},
			want:    Bounds{MinX: 100, MaxX: 100, MinY: 75, MaxY: 75},
		},
		{
			name:    "mixed axes",
			scale:   1,
			content: Sz(800, 100),
			opts:    BoundsOptions{LimitToBounds: true, CenterZoomedOut: true},
			want:    Bounds{MinX: -400, MaxX: 0, MinY: 100, MaxY: 100},
		},
	}

	for _, tt := range tests {
		got := ComputeBounds(tt.scale, viewport, tt.content, tt.opts)
		if got != tt.want {
			t.Errorf("%s: ComputeBounds = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestComputeBoundsUnlimited(t *testing.T) {
	b := ComputeBounds(3, Sz(100, 100), Sz(100, 100), BoundsOptions{})
	if !math.IsInf(b.MinX, -1) || !math.IsInf(b.MaxY, 1) {
		t.Fatalf("expected unbounded ranges, got %+v", b)
	}
	if !b.Contains(Pt(-1e12, 1e12)) {
		t.Errorf("unbounded ranges should contain any point")
	}
}

func TestComputeBoundsOverrides(t *testing.T) {
	minX, maxY := -50.0, 25.0
	b := ComputeBounds(2, Sz(100, 100), Sz(100, 100), BoundsOptions{
		LimitToBounds: true,
		MinPositionX:  &minX,
		MaxPositionY:  &maxY,
	})
	want := Bounds{MinX: -50, MaxX: 0, MinY: -100, MaxY: 25}
	if b != want {
		t.Errorf("overrides: got %+v, want %+v", b, want)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	start := Transform{Scale: 1.3, X: -40, Y: 12}
	anchor := Pt(100, 100)
	before := start.ScreenToContent(anchor)

	for _, s := range []float64{0.5, 1, 1.2, 3.7, 8} {
		after := start.ZoomAt(s, anchor).ScreenToContent(anchor)
		if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
			t.Errorf("ZoomAt(%v): anchor moved from %+v to %+v", s, before, after)
		}
	}
}

func TestWheelExampleAnchor(t *testing.T) {
	got := Identity.ZoomAt(1.2, Pt(100, 100))
	if math.Abs((100-got.X)/1.2-100) > 1e-9 {
		t.Errorf("(100 - x)/1.2 = %v, want 100", (100-got.X)/1.2)
	}
}

func TestClampInvertedRange(t *testing.T) {
	if got := Clamp(5.0, 3, 1); got != 3 {
		t.Errorf("Clamp(5, 3, 1) = %v, want 3", got)
	}
	b := Bounds{MinX: 10, MaxX: 0, MinY: 0, MaxY: 0}
	if !b.Inverted() {
		t.Errorf("%+v should report inverted", b)
	}
	if (Bounds{MinX: -5, MaxX: 0, MinY: 3, MaxY: 3}).Inverted() {
		t.Errorf("a collapsed axis is not inverted")
	}
	if p := b.Clamp(Pt(-5, 4)); p != Pt(10, 0) {
		t.Errorf("inverted bounds clamp = %+v", p)
	}
}

func TestTransformString(t *testing.T) {
	tr := Transform{Scale: 1.5, X: -20, Y: 4.25}
	want := "translate(-20px, 4.25px) scale(1.5)"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTransformValid(t *testing.T) {
	if !Identity.Valid() {
		t.Error("identity should be valid")
	}
	if (Transform{Scale: math.NaN()}).Valid() {
		t.Error("NaN scale should be invalid")
	}
	if (Transform{Scale: 1, X: math.Inf(1)}).Valid() {
		t.Error("infinite X should be invalid")
	}
}
