package state

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
)

func newStore(t *testing.T, opts config.Options) *Store {
	t.Helper()
	s := NewStore(opts, nil)
	require.NoError(t, s.Resize(core.Sz(400, 300), core.Sz(400, 300)))
	return s
}

func TestSetTransformRejectsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore(config.DefaultOptions(), logging.NewWriter(&buf, slog.LevelWarn))
	require.NoError(t, s.Resize(core.Sz(400, 300), core.Sz(400, 300)))
	require.NoError(t, s.SetTransform(2, -100, -50))
	before := s.Transform()

	var rejected int
	s.OnReject(func(error) { rejected++ })
	notified := 0
	s.Subscribe(func(core.Transform, float64) { notified++ })

	for _, v := range [][3]float64{
		{math.NaN(), 0, 0},
		{1, math.Inf(1), 0},
		{1, 0, math.Inf(-1)},
	} {
		err := s.SetTransform(v[0], v[1], v[2])
		assert.ErrorIs(t, err, ErrNonFinite)
	}

	assert.Equal(t, before, s.Transform())
	assert.Equal(t, 3, rejected)
	assert.Zero(t, notified)
	assert.Contains(t, buf.String(), "transform rejected")
}

func TestSetTransformClampsScaleAndPosition(t *testing.T) {
	opts := config.DefaultOptions()
	opts.MinScale, opts.MaxScale = 1, 4
	s := newStore(t, opts)

	tests := []struct {
		in   core.Transform
		want core.Transform
	}{
		{core.Transform{Scale: 10, X: 0, Y: 0}, core.Transform{Scale: 4, X: 0, Y: 0}},
		{core.Transform{Scale: 0.2, X: 50, Y: 50}, core.Transform{Scale: 1, X: 0, Y: 0}},
		{core.Transform{Scale: 2, X: -1000, Y: 40}, core.Transform{Scale: 2, X: -400, Y: 0}},
		{core.Transform{Scale: 2, X: -120, Y: -80}, core.Transform{Scale: 2, X: -120, Y: -80}},
	}
	for _, tt := range tests {
		require.NoError(t, s.Set(tt.in))
		assert.Equal(t, tt.want, s.Transform(), "input %v", tt.in)
	}
}

func TestSetTransformInvariants(t *testing.T) {
	opts := config.DefaultOptions()
	opts.MinScale, opts.MaxScale = 0.5, 6
	s := newStore(t, opts)

	inputs := []float64{-1e9, -523.5, -3, -0.1, 0, 0.25, 1, 2.5, 7, 99, 1e9}
	for _, sc := range inputs {
		for _, x := range inputs {
			for _, y := range inputs {
				if err := s.SetTransform(sc, x, y); err != nil {
					t.Fatalf("finite input rejected: %v", err)
				}
				got := s.Transform()
				require.True(t, got.Valid())
				require.GreaterOrEqual(t, got.Scale, 0.5)
				require.LessOrEqual(t, got.Scale, 6.0)
				require.True(t, s.BoundsAt(got.Scale).Contains(got.Position()),
					"position %v outside bounds at scale %v", got.Position(), got.Scale)
			}
		}
	}
}

func TestInvertedOverrideWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	opts := config.DefaultOptions()
	minX := 50.0
	opts.MinPositionX = &minX
	s := NewStore(opts, logging.NewWriter(&buf, slog.LevelWarn))
	require.NoError(t, s.Resize(core.Sz(400, 300), core.Sz(400, 300)))

	require.True(t, s.Bounds().Inverted())
	require.NoError(t, s.SetTransform(1, -100, 0))
	assert.Equal(t, 50.0, s.Transform().X)
	require.NoError(t, s.SetTransform(1, 200, 0))
	assert.Equal(t, 50.0, s.Transform().X)

	assert.Equal(t, 1, strings.Count(buf.String(), "invert the bounds"))
}

func TestSetTransformUnlimited(t *testing.T) {
	opts := config.DefaultOptions()
	opts.LimitToBounds = false
	s := newStore(t, opts)

	require.NoError(t, s.SetTransform(1, 5000, -5000))
	assert.Equal(t, core.Transform{Scale: 1, X: 5000, Y: -5000}, s.Transform())
}

func TestPreviousScaleTracksCommits(t *testing.T) {
	s := newStore(t, config.DefaultOptions())

	require.NoError(t, s.SetTransform(2, 0, 0))
	require.NoError(t, s.SetTransform(3, 0, 0))
	assert.Equal(t, 2.0, s.PreviousScale())

	var seen []float64
	s.Subscribe(func(tr core.Transform, prev float64) { seen = append(seen, prev, tr.Scale) })
	require.NoError(t, s.SetTransform(1.5, 0, 0))
	assert.Equal(t, []float64{3, 1.5}, seen)
}

func TestResizeReclamps(t *testing.T) {
	s := newStore(t, config.DefaultOptions())
	require.NoError(t, s.SetTransform(2, -400, -300))

	require.NoError(t, s.Resize(core.Sz(600, 400), core.Sz(400, 300)))
	got := s.Transform()
	assert.Equal(t, -200.0, got.X)
	assert.Equal(t, -200.0, got.Y)
}

func TestUnsubscribe(t *testing.T) {
	s := newStore(t, config.DefaultOptions())
	calls := 0
	off := s.Subscribe(func(core.Transform, float64) { calls++ })

	require.NoError(t, s.SetTransform(2, 0, 0))
	off()
	require.NoError(t, s.SetTransform(3, 0, 0))
	assert.Equal(t, 1, calls)
}

func TestBoundsBeforeResizeUnbounded(t *testing.T) {
	s := NewStore(config.DefaultOptions(), nil)
	assert.Equal(t, core.Unbounded, s.Bounds())
}
