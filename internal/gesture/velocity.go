package gesture

import (
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

const (
	velocitySamples = 8
	velocityWindow  = 100 * time.Millisecond
)

// VelocitySample is one pointer delta observed during a pan.
type VelocitySample struct {
	DX, DY float64
	DT     time.Duration
	At     time.Time
}

// VelocityTracker keeps the most recent pan deltas in a ring.
type VelocityTracker struct {
	ring [velocitySamples]VelocitySample
	next int
	n    int
}

// Add records a delta of (dx, dy) that took dt and ended at at.
func (v *VelocityTracker) Add(dx, dy float64, dt time.Duration, at time.Time) {
	v.ring[v.next] = VelocitySample{DX: dx, DY: dy, DT: dt, At: at}
	v.next = (v.next + 1) % velocitySamples
	if v.n < velocitySamples {
		v.n++
	}
}

// Estimate returns the velocity in pixels per millisecond over the
// samples recorded within the last 100ms before now.
func (v *VelocityTracker) Estimate(now time.Time) core.Point {
	var dx, dy float64
	var dt time.Duration
	for i := 0; i < v.n; i++ {
		s := v.ring[i]
		if now.Sub(s.At) > velocityWindow {
			continue
		}
		dx += s.DX
		dy += s.DY
		dt += s.DT
	}
	if dt <= 0 {
		return core.Point{}
	}
	ms := float64(dt) / float64(time.Millisecond)
	return core.Pt(dx/ms, dy/ms)
}

// Reset discards every sample.
func (v *VelocityTracker) Reset() {
	*v = VelocityTracker{}
}
