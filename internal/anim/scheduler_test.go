package anim

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

type recordingSink struct {
	commits []core.Transform
}

func (r *recordingSink) SetTransform(scale, x, y float64) error {
	r.commits = append(r.commits, core.Transform{Scale: scale, X: x, Y: y})
	return nil
}

func (r *recordingSink) last() core.Transform {
	return r.commits[len(r.commits)-1]
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestEasingsEndpoints(t *testing.T) {
	for _, name := range Names() {
		fn, ok := Lookup(name)
		require.True(t, ok, name)
		assert.InDelta(t, 0, fn(0), 1e-9, "%s(0)", name)
		assert.InDelta(t, 1, fn(1), 1e-9, "%s(1)", name)
	}
	_, ok := Lookup("bounce")
	assert.False(t, ok)
}

func TestAnimateZeroDurationCommitsImmediately(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	target := core.Transform{Scale: 2, X: -10, Y: 5}

	ok := s.Animate("zoom", core.Identity, target, 0, EaseOut, time.Unix(0, 0))

	require.True(t, ok)
	assert.Equal(t, Idle, s.State())
	require.Len(t, sink.commits, 1)
	assert.Equal(t, target, sink.last())
}

func TestAnimateInterpolatesAndCompletes(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	t0 := time.Unix(100, 0)
	target := core.Transform{Scale: 3, X: 100, Y: -50}

	var outcomes []Outcome
	s.OnDone(func(_ Handle, o Outcome) { outcomes = append(outcomes, o) })

	require.True(t, s.Animate("zoom", core.Identity, target, 200*time.Millisecond, Linear, t0))
	assert.Empty(t, sink.commits, "nothing is committed before the first tick")

	assert.True(t, s.Tick(t0.Add(100*time.Millisecond)))
	want := core.Transform{Scale: 2, X: 50, Y: -25}
	if diff := cmp.Diff(want, sink.last(), approx); diff != "" {
		t.Errorf("halfway state mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, s.Tick(t0.Add(250*time.Millisecond)))
	assert.Equal(t, target, sink.last(), "overshooting the duration commits the exact target")
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, []Outcome{Completed}, outcomes)

	n := len(sink.commits)
	assert.False(t, s.Tick(t0.Add(300*time.Millisecond)))
	assert.Len(t, sink.commits, n, "idle ticks commit nothing")
}

func TestAnimateSupersedes(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	t0 := time.Unix(0, 0)

	var outcomes []Outcome
	s.OnDone(func(_ Handle, o Outcome) { outcomes = append(outcomes, o) })

	first := core.Transform{Scale: 4}
	second := core.Transform{Scale: 1.5, X: 3, Y: 3}

	s.Animate("a", core.Identity, first, 200*time.Millisecond, Linear, t0)
	s.Tick(t0.Add(50 * time.Millisecond))
	mid := sink.last()

	s.Animate("b", mid, second, 200*time.Millisecond, Linear, t0.Add(60*time.Millisecond))
	after := len(sink.commits)

	for ms := 70; ms <= 400; ms += 10 {
		s.Tick(t0.Add(time.Duration(ms) * time.Millisecond))
	}

	for _, c := range sink.commits[after:] {
		// Every later frame lies on the segment mid→second; none drifts toward 4.
		assert.LessOrEqual(t, c.Scale, math.Max(mid.Scale, second.Scale)+1e-9)
		assert.GreaterOrEqual(t, c.Scale, math.Min(mid.Scale, second.Scale)-1e-9)
	}
	assert.Equal(t, second, sink.last())
	assert.Equal(t, []Outcome{Superseded, Completed}, outcomes)
}

func TestCancelStopsCommits(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	t0 := time.Unix(0, 0)

	s.Animate("zoom", core.Identity, core.Transform{Scale: 2}, time.Second, EaseInOutQuad, t0)
	s.Tick(t0.Add(100 * time.Millisecond))
	n := len(sink.commits)

	s.Cancel()
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Tick(t0.Add(2*time.Second)))
	assert.Len(t, sink.commits, n)
}

func TestAnimateRejectsInvalidTarget(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	t0 := time.Unix(0, 0)

	s.Animate("zoom", core.Identity, core.Transform{Scale: 2}, time.Second, Linear, t0)
	ok := s.Animate("bad", core.Identity, core.Transform{Scale: math.NaN()}, time.Second, Linear, t0)

	assert.False(t, ok)
	h, running := s.Current()
	require.True(t, running)
	assert.Equal(t, "zoom", h.Name, "the valid animation keeps running")
}

func TestUnknownEasingFallsBack(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil)
	t0 := time.Unix(0, 0)

	require.True(t, s.Animate("zoom", core.Identity, core.Transform{Scale: 3}, 100*time.Millisecond, "wobble", t0))
	s.Tick(t0.Add(50 * time.Millisecond))
	assert.InDelta(t, 2, sink.last().Scale, 1e-9, "easeOut is symmetric at the midpoint")
}
