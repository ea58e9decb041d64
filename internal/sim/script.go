// Package sim replays scripted input against a headless engine.
//
// A script is a YAML list of timed input steps. The simulator advances a
// virtual clock in fixed frames, delivers each step when its time comes
// and records every accepted transform, so gesture behaviour can be
// checked without a window.
package sim

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// Kind names one scripted input.
type Kind string

const (
	KindWheel       Kind = "wheel"
	KindDown        Kind = "down"
	KindMove        Kind = "move"
	KindUp          Kind = "up"
	KindLeave       Kind = "leave"
	KindTouchStart  Kind = "touchStart"
	KindTouchMove   Kind = "touchMove"
	KindTouchEnd    Kind = "touchEnd"
	KindDoubleClick Kind = "doubleClick"
	KindKeyDown     Kind = "keyDown"
	KindKeyUp       Kind = "keyUp"
	KindBlur        Kind = "blur"
	KindZoomIn      Kind = "zoomIn"
	KindZoomOut     Kind = "zoomOut"
	KindReset       Kind = "reset"
	KindCenter      Kind = "center"
	KindSet         Kind = "set"
	KindCancel      Kind = "cancel"
)

// Step is one timed input.
type Step struct {
	At   time.Duration `yaml:"at"`
	Kind Kind          `yaml:"kind"`

	X       float64      `yaml:"x"`
	Y       float64      `yaml:"y"`
	DX      float64      `yaml:"dx"`
	DY      float64      `yaml:"dy"`
	Ctrl    bool         `yaml:"ctrl"`
	Touch   bool         `yaml:"touch"`
	Touches [][2]float64 `yaml:"touches"`
	Targets []string     `yaml:"targets"`
	Key     string       `yaml:"key"`
	Scale   float64      `yaml:"scale"`
}

// Script is a replayable input sequence.
type Script struct {
	Viewport [2]float64    `yaml:"viewport"`
	Content  [2]float64    `yaml:"content"`
	Frame    time.Duration `yaml:"frame"`
	// Duration is the minimum simulated time. The run continues past it
	// until animations and the wheel stop deadline settle.
	Duration time.Duration  `yaml:"duration"`
	Options  map[string]any `yaml:"options"`
	Steps    []Step         `yaml:"steps"`
}

// DefaultFrame is used when a script leaves frame unset.
const DefaultFrame = 16 * time.Millisecond

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and checks a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every problem with the script.
func (s *Script) Validate() error {
	var errs []error
	if s.Viewport[0] <= 0 || s.Viewport[1] <= 0 {
		errs = append(errs, errors.New("viewport must be positive"))
	}
	if s.Content[0] <= 0 || s.Content[1] <= 0 {
		errs = append(errs, errors.New("content must be positive"))
	}
	if s.Frame < 0 {
		errs = append(errs, errors.New("frame must not be negative"))
	}
	var last time.Duration
	for i, st := range s.Steps {
		if st.At < last {
			errs = append(errs, fmt.Errorf("step %d: at %v is before the previous step", i, st.At))
		}
		last = st.At
		if !knownKinds[st.Kind] {
			errs = append(errs, fmt.Errorf("step %d: unknown kind %q", i, st.Kind))
		}
	}
	if _, err := s.options(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Script) options() (config.Options, error) {
	opts := config.DefaultOptions()
	if len(s.Options) == 0 {
		return opts, nil
	}
	if err := config.Decode(s.Options, &opts); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func (s *Script) frame() time.Duration {
	if s.Frame == 0 {
		return DefaultFrame
	}
	return s.Frame
}

func (s *Script) sizes() (viewport, content core.Size) {
	return core.Sz(s.Viewport[0], s.Viewport[1]), core.Sz(s.Content[0], s.Content[1])
}

var knownKinds = map[Kind]bool{
	KindWheel: true, KindDown: true, KindMove: true, KindUp: true, KindLeave: true,
	KindTouchStart: true, KindTouchMove: true, KindTouchEnd: true, KindDoubleClick: true,
	KindKeyDown: true, KindKeyUp: true, KindBlur: true,
	KindZoomIn: true, KindZoomOut: true, KindReset: true, KindCenter: true, KindSet: true, KindCancel: true,
}
