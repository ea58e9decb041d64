package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleRangeNormalises(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		lo, hi   float64
	}{
		{"unset", 0, 0, 1, 1},
		{"only max", 0, 4, 1, 4},
		{"only min", 2, 0, 2, 2},
		{"swapped", 6, 2, 2, 6},
		{"normal", 0.5, 8, 0.5, 8},
	}
	for _, tt := range tests {
		lo, hi := Options{MinScale: tt.min, MaxScale: tt.max}.ScaleRange()
		assert.Equal(t, tt.lo, lo, tt.name)
		assert.Equal(t, tt.hi, hi, tt.name)
	}
}

func TestDefaultOptionsValid(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	minX, maxX := 10.0, -10.0
	o := DefaultOptions()
	o.MinScale = 4
	o.MaxScale = 2
	o.MinPositionX = &minX
	o.MaxPositionX = &maxX
	o.Wheel.Step = -1
	o.DoubleClick.Mode = "spin"
	o.ZoomAnimation.AnimationType = "wobble"

	err := o.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "minScale 4 is greater than maxScale 2")
	assert.Contains(t, msg, "minPositionX")
	assert.Contains(t, msg, "wheel.step")
	assert.Contains(t, msg, `unknown doubleClick.mode "spin"`)
	assert.Contains(t, msg, `unknown easing "wobble"`)
}

func TestStepFallbacks(t *testing.T) {
	var o Options
	assert.Equal(t, DefaultWheelStep, o.WheelStep())
	assert.Equal(t, DefaultPinchStep, o.PinchStep())
	assert.Equal(t, DefaultZoomStep, o.ZoomStep())
	assert.Equal(t, DefaultDoubleClickStep, o.DoubleClickStep())
	assert.True(t, o.VelocityEnabled())

	o.VelocityAnimation.Disabled = true
	assert.False(t, o.VelocityEnabled())
}

func TestAnimationTimeDisabled(t *testing.T) {
	a := Animation{AnimationTime: time.Second}
	assert.Equal(t, time.Second, a.Time())
	a.Disabled = true
	assert.Zero(t, a.Time())
}

func TestInitialClamped(t *testing.T) {
	o := Options{MinScale: 1, MaxScale: 4, InitialScale: 10, InitialPositionX: 5}
	init := o.Initial()
	assert.Equal(t, 4.0, init.Scale)
	assert.Equal(t, 5.0, init.X)
}

func TestParseYAML(t *testing.T) {
	src := []byte(`
minScale: 0.5
maxScale: 4
centerOnInit: true
maxPositionX: 120
wheel:
  step: 0.1
  activationKeys: [Ctrl, Shift]
panning:
  lockAxisY: true
  excluded: "toolbar,legend"
doubleClick:
  mode: reset
  animationTime: 350
zoomAnimation:
  animationTime: 150ms
  animationType: easeInOutCubic
  size: 0.25
velocityAnimation:
  sensitivity: 2
`)
	o, err := Parse(src)
	require.NoError(t, err)

	assert.Equal(t, 0.5, o.MinScale)
	assert.Equal(t, 4.0, o.MaxScale)
	assert.True(t, o.CenterOnInit)
	assert.True(t, o.LimitToBounds, "keys absent from the file keep their default")
	require.NotNil(t, o.MaxPositionX)
	assert.Equal(t, 120.0, *o.MaxPositionX)
	assert.Nil(t, o.MinPositionX)

	assert.Equal(t, 0.1, o.Wheel.Step)
	assert.Equal(t, []string{"Ctrl", "Shift"}, o.Wheel.ActivationKeys)
	assert.True(t, o.Panning.LockAxisY)
	assert.Equal(t, []string{"toolbar", "legend"}, o.Panning.Excluded)

	assert.Equal(t, ModeReset, o.DoubleClick.Mode)
	assert.Equal(t, 350*time.Millisecond, o.DoubleClick.AnimationTime)
	assert.Equal(t, 150*time.Millisecond, o.ZoomAnimation.AnimationTime)
	assert.Equal(t, "easeInOutCubic", o.ZoomAnimation.AnimationType)
	assert.Equal(t, 0.25, o.ZoomAnimation.Size)
	assert.Equal(t, 2.0, o.VelocityAnimation.Sensitivity)
	assert.Equal(t, DefaultVelocityTime, o.VelocityAnimation.AnimationTime)

	assert.NoError(t, o.Validate())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("zoomSpeed: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("wheel: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxScale: 3\n"), 0o644))

	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, o.MaxScale)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
