package widgets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/draw"
)

func TestZoomBarMapping(t *testing.T) {
	tests := []struct {
		scale, lo, hi, progress float64
	}{
		{1, 1, 8, 0},
		{8, 1, 8, 1},
		{4.5, 1, 8, 0.5},
		{20, 1, 8, 1},
		{3, 3, 3, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.progress, progressOf(tt.scale, tt.lo, tt.hi), 1e-12, "scale %v", tt.scale)
	}
	assert.InDelta(t, 4.5, scaleAt(0.5, 1, 8), 1e-12)
	assert.Equal(t, 8.0, scaleAt(2, 1, 8))
}

func TestToolbarZoomTo(t *testing.T) {
	now := time.Unix(0, 0)
	eng := engine.New(config.DefaultOptions(), engine.WithClock(func() time.Time { return now }))
	defer eng.Close()
	scene := draw.DemoScene()
	eng.Resize(core.Sz(800, 500), scene.Size)
	eng.Mount()

	tb := NewToolbar(eng, scene, "card-1", "card-2")
	tb.ZoomTo("card-1")
	for ms := 0; eng.Tick(now.Add(time.Duration(ms) * time.Millisecond)); ms += 16 {
	}

	// card-1 is 400x250 and fits the 800x500 viewport exactly at 2x.
	got := eng.Transform()
	assert.InDelta(t, 2.0, got.Scale, 1e-9)
	assert.InDelta(t, -300.0, got.X, 1e-9)
	assert.InDelta(t, -300.0, got.Y, 1e-9)

	tb.ZoomTo("missing")
	assert.False(t, eng.Animating())
}
