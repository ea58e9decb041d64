// Package config holds the per-viewport configuration and its defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/anim"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// DoubleClickMode selects what a double click or double tap does.
type DoubleClickMode string

const (
	ModeZoomIn  DoubleClickMode = "zoomIn"
	ModeZoomOut DoubleClickMode = "zoomOut"
	ModeReset   DoubleClickMode = "reset"
)

// Options configures one viewport instance. It is applied once.
type Options struct {
	Disabled bool `mapstructure:"disabled"`

	InitialScale     float64 `mapstructure:"initialScale"`
	InitialPositionX float64 `mapstructure:"initialPositionX"`
	InitialPositionY float64 `mapstructure:"initialPositionY"`

	// Unset (zero) scale limits normalise to [1, 1].
	MinScale float64 `mapstructure:"minScale"`
	MaxScale float64 `mapstructure:"maxScale"`

	MinPositionX *float64 `mapstructure:"minPositionX"`
	MaxPositionX *float64 `mapstructure:"maxPositionX"`
	MinPositionY *float64 `mapstructure:"minPositionY"`
	MaxPositionY *float64 `mapstructure:"maxPositionY"`

	LimitToBounds   bool `mapstructure:"limitToBounds"`
	CenterZoomedOut bool `mapstructure:"centerZoomedOut"`
	CenterOnInit    bool `mapstructure:"centerOnInit"`

	Wheel       Wheel       `mapstructure:"wheel"`
	Panning     Panning     `mapstructure:"panning"`
	Pinch       Pinch       `mapstructure:"pinch"`
	DoubleClick DoubleClick `mapstructure:"doubleClick"`

	ZoomAnimation      ZoomAnimation     `mapstructure:"zoomAnimation"`
	AlignmentAnimation Animation         `mapstructure:"alignmentAnimation"`
	VelocityAnimation  VelocityAnimation `mapstructure:"velocityAnimation"`
}

// Wheel configures wheel and touchpad zoom.
type Wheel struct {
	Step             float64  `mapstructure:"step"`
	Disabled         bool     `mapstructure:"disabled"`
	WheelDisabled    bool     `mapstructure:"wheelDisabled"`
	TouchPadDisabled bool     `mapstructure:"touchPadDisabled"`
	ActivationKeys   []string `mapstructure:"activationKeys"`
	Excluded         []string `mapstructure:"excluded"`
}

// Panning configures mouse and single-touch drag.
type Panning struct {
	Disabled         bool     `mapstructure:"disabled"`
	VelocityDisabled bool     `mapstructure:"velocityDisabled"`
	LockAxisX        bool     `mapstructure:"lockAxisX"`
	LockAxisY        bool     `mapstructure:"lockAxisY"`
	ActivationKeys   []string `mapstructure:"activationKeys"`
	Excluded         []string `mapstructure:"excluded"`
}

// Pinch configures two-finger zoom. Step is the sensitivity exponent
// applied to the finger distance ratio.
type Pinch struct {
	Step     float64  `mapstructure:"step"`
	Disabled bool     `mapstructure:"disabled"`
	Excluded []string `mapstructure:"excluded"`
}

// DoubleClick configures double click and double tap.
type DoubleClick struct {
	Disabled      bool            `mapstructure:"disabled"`
	Step          float64         `mapstructure:"step"`
	Mode          DoubleClickMode `mapstructure:"mode"`
	AnimationTime time.Duration   `mapstructure:"animationTime"`
	AnimationType string          `mapstructure:"animationType"`
	Excluded      []string        `mapstructure:"excluded"`
}

// Animation is the common set of transition tunables.
type Animation struct {
	Disabled      bool          `mapstructure:"disabled"`
	AnimationTime time.Duration `mapstructure:"animationTime"`
	AnimationType string        `mapstructure:"animationType"`
}

// Time returns the transition duration, zero when disabled.
func (a Animation) Time() time.Duration {
	if a.Disabled || a.AnimationTime < 0 {
		return 0
	}
	return a.AnimationTime
}

// ZoomAnimation adds the default imperative zoom step.
type ZoomAnimation struct {
	Animation `mapstructure:",squash"`
	Size      float64 `mapstructure:"size"`
}

// VelocityAnimation tunes inertia after a pan release.
type VelocityAnimation struct {
	Animation   `mapstructure:",squash"`
	Sensitivity float64 `mapstructure:"sensitivity"`
}

// Fallback values used whenever a configured tunable is unusable.
const (
	DefaultWheelStep       = 0.2
	DefaultPinchStep       = 1.0
	DefaultDoubleClickStep = 0.7
	DefaultZoomStep        = 0.5
	DefaultSensitivity     = 1.0
	DefaultAnimationTime   = 200 * time.Millisecond
	DefaultVelocityTime    = 400 * time.Millisecond
)

// DefaultOptions returns the preset used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		InitialScale:  1,
		MinScale:      1,
		MaxScale:      8,
		LimitToBounds: true,
		Wheel: Wheel{
			Step: DefaultWheelStep,
		},
		Pinch: Pinch{
			Step: DefaultPinchStep,
		},
		DoubleClick: DoubleClick{
			Step:          DefaultDoubleClickStep,
			Mode:          ModeZoomIn,
			AnimationTime: DefaultAnimationTime,
			AnimationType: anim.EaseOut,
		},
		ZoomAnimation: ZoomAnimation{
			Animation: Animation{AnimationTime: DefaultAnimationTime, AnimationType: anim.EaseOut},
			Size:      DefaultZoomStep,
		},
		AlignmentAnimation: Animation{
			AnimationTime: DefaultAnimationTime,
			AnimationType: anim.EaseOut,
		},
		VelocityAnimation: VelocityAnimation{
			Animation:   Animation{AnimationTime: DefaultVelocityTime, AnimationType: anim.EaseOutQuad},
			Sensitivity: DefaultSensitivity,
		},
	}
}

// ScaleRange returns the usable [min, max] scale. Unset limits become 1
// and a swapped pair is put back in order.
func (o Options) ScaleRange() (lo, hi float64) {
	lo, hi = o.MinScale, o.MaxScale
	if !core.Finite(lo) || lo <= 0 {
		lo = 1
	}
	if !core.Finite(hi) || hi <= 0 {
		hi = lo
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// ClampScale limits s to ScaleRange.
func (o Options) ClampScale(s float64) float64 {
	lo, hi := o.ScaleRange()
	return core.Clamp(s, lo, hi)
}

// Initial returns the configured starting transform.
func (o Options) Initial() core.Transform {
	s := o.InitialScale
	if !core.Finite(s) || s <= 0 {
		s = 1
	}
	return core.Transform{
		Scale: o.ClampScale(s),
		X:     o.InitialPositionX,
		Y:     o.InitialPositionY,
	}
}

// Bounds returns the bounds options derived from o.
func (o Options) Bounds() core.BoundsOptions {
	return core.BoundsOptions{
		LimitToBounds:   o.LimitToBounds,
		CenterZoomedOut: o.CenterZoomedOut,
		MinPositionX:    o.MinPositionX,
		MaxPositionX:    o.MaxPositionX,
		MinPositionY:    o.MinPositionY,
		MaxPositionY:    o.MaxPositionY,
	}
}

// step returns v, or def when v is not a usable positive step.
func step(v, def float64) float64 {
	if !core.Finite(v) || v <= 0 {
		return def
	}
	return v
}

// WheelStep returns the wheel zoom step.
func (o Options) WheelStep() float64 { return step(o.Wheel.Step, DefaultWheelStep) }

// PinchStep returns the pinch sensitivity exponent.
func (o Options) PinchStep() float64 { return step(o.Pinch.Step, DefaultPinchStep) }

// DoubleClickStep returns the double click zoom step.
func (o Options) DoubleClickStep() float64 {
	return step(o.DoubleClick.Step, DefaultDoubleClickStep)
}

// ZoomStep returns the default step for ZoomIn and ZoomOut.
func (o Options) ZoomStep() float64 { return step(o.ZoomAnimation.Size, DefaultZoomStep) }

// Sensitivity returns the inertia sensitivity.
func (o Options) Sensitivity() float64 {
	return step(o.VelocityAnimation.Sensitivity, DefaultSensitivity)
}

// VelocityEnabled reports whether a pan release may start inertia.
func (o Options) VelocityEnabled() bool {
	return !o.Panning.VelocityDisabled && !o.VelocityAnimation.Disabled
}

// Validate reports every inconsistency in o. The engine still runs with
// an invalid configuration; each use site normalises what it reads.
func (o Options) Validate() error {
	var errs []error

	if o.MinScale > 0 && o.MaxScale > 0 && o.MinScale > o.MaxScale {
		errs = append(errs, fmt.Errorf("minScale %v is greater than maxScale %v", o.MinScale, o.MaxScale))
	}
	if o.MinScale < 0 || o.MaxScale < 0 {
		errs = append(errs, errors.New("scale limits must not be negative"))
	}
	lo, hi := o.ScaleRange()
	if o.InitialScale != 0 && (o.InitialScale < lo || o.InitialScale > hi) {
		errs = append(errs, fmt.Errorf("initialScale %v is outside [%v, %v]", o.InitialScale, lo, hi))
	}
	if o.MinPositionX != nil && o.MaxPositionX != nil && *o.MinPositionX > *o.MaxPositionX {
		errs = append(errs, errors.New("minPositionX is greater than maxPositionX"))
	}
	if o.MinPositionY != nil && o.MaxPositionY != nil && *o.MinPositionY > *o.MaxPositionY {
		errs = append(errs, errors.New("minPositionY is greater than maxPositionY"))
	}

	for name, v := range map[string]float64{
		"wheel.step":                    o.Wheel.Step,
		"pinch.step":                    o.Pinch.Step,
		"doubleClick.step":              o.DoubleClick.Step,
		"zoomAnimation.size":            o.ZoomAnimation.Size,
		"velocityAnimation.sensitivity": o.VelocityAnimation.Sensitivity,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	switch o.DoubleClick.Mode {
	case "", ModeZoomIn, ModeZoomOut, ModeReset:
	default:
		errs = append(errs, fmt.Errorf("unknown doubleClick.mode %q", o.DoubleClick.Mode))
	}

	for name, easing := range map[string]string{
		"doubleClick.animationType":        o.DoubleClick.AnimationType,
		"zoomAnimation.animationType":      o.ZoomAnimation.AnimationType,
		"alignmentAnimation.animationType": o.AlignmentAnimation.AnimationType,
		"velocityAnimation.animationType":  o.VelocityAnimation.AnimationType,
	} {
		if easing == "" {
			continue
		}
		if _, ok := anim.Lookup(easing); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown easing %q", name, easing))
		}
	}

	return errors.Join(errs...)
}
