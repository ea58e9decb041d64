package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

func TestHitTestTopmostFirst(t *testing.T) {
	s := DemoScene()

	tests := []struct {
		at   core.Point
		want []string
	}{
		{core.Pt(240, 240), []string{"dot-1", "card-1"}},
		{core.Pt(160, 160), []string{"card-1"}},
		{core.Pt(500, 670), []string{"badge", "card-3"}},
		{core.Pt(10, 10), nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.HitTest(tt.at), "at %v", tt.at)
	}
}

func TestCircleContainsUsesRadius(t *testing.T) {
	e := Element{Shape: ShapeCircle, Rect: core.Rect{Min: core.Pt(0, 0), Size: core.Sz(10, 10)}}
	assert.True(t, e.Contains(core.Pt(5, 5)))
	assert.False(t, e.Contains(core.Pt(0.5, 0.5)), "corner of the box is outside the circle")
}

func TestScreenRect(t *testing.T) {
	s := DemoScene()
	e, ok := s.Element("card-1")
	require.True(t, ok)

	got := ScreenRect(e, core.Transform{Scale: 2, X: -100, Y: 20})
	assert.Equal(t, core.Rect{Min: core.Pt(200, 320), Size: core.Sz(800, 500)}, got)

	_, ok = s.Element("missing")
	assert.False(t, ok)
}
