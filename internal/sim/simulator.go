package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/gesture"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
)

// SettleLimit bounds how long a run may continue past its last step
// while waiting for animations to finish.
const SettleLimit = 10 * time.Second

// ErrUnsettled is returned when the engine is still busy after SettleLimit.
var ErrUnsettled = errors.New("engine did not settle")

// epoch is the virtual time origin of every run.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Config configures a simulation run.
type Config struct {
	Script *Script
	Logger *slog.Logger
	// Recorder, when set, receives the same callbacks as the run metrics.
	Recorder engine.Recorder
	// Trace keeps every accepted transform in Metrics.Trace.
	Trace bool
}

// Sample is one accepted transform.
type Sample struct {
	AtMs  float64 `json:"at_ms"`
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func sampleOf(at time.Duration, t core.Transform) Sample {
	return Sample{AtMs: float64(at) / float64(time.Millisecond), Scale: t.Scale, X: t.X, Y: t.Y}
}

// Metrics collects what happened during a run.
type Metrics struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	SimulatedMs float64   `json:"simulated_ms"`

	Frames int `json:"frames"`
	Steps  int `json:"steps"`

	Events     map[string]int `json:"events"`
	Gestures   map[string]int `json:"gestures"`
	Animations map[string]int `json:"animations"`
	Rejected   int            `json:"rejected"`

	Final Sample   `json:"final"`
	Trace []Sample `json:"trace,omitempty"`
}

// Simulator drives one engine through a script on a virtual clock.
// It is single use and not safe for concurrent use.
type Simulator struct {
	config Config
	logger *slog.Logger

	now     time.Time
	elapsed time.Duration
	metrics Metrics
}

// NewSimulator creates a simulator for cfg.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{
		config: cfg,
		logger: logging.OrNop(cfg.Logger),
		now:    epoch,
		metrics: Metrics{
			Events:     make(map[string]int),
			Gestures:   make(map[string]int),
			Animations: make(map[string]int),
		},
	}
}

// Run replays the script and returns the collected metrics.
func (s *Simulator) Run(ctx context.Context) (*Metrics, error) {
	script := s.config.Script
	if script == nil {
		return nil, errors.New("no script")
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	opts, _ := script.options()

	s.metrics.StartTime = time.Now()
	eng := engine.New(opts,
		engine.WithLogger(s.logger),
		engine.WithClock(func() time.Time { return s.now }),
		engine.WithRecorder(recorder{s}),
	)
	defer eng.Close()

	for _, name := range allEvents {
		eng.On(name, func(ev engine.Event) {
			s.metrics.Events[string(ev.Name)]++
			if ev.Name == engine.EventTransformChange && s.config.Trace {
				s.metrics.Trace = append(s.metrics.Trace, sampleOf(s.elapsed, ev.Transform))
			}
		})
	}

	eng.Resize(script.sizes())
	eng.Mount()

	frame := script.frame()
	end := script.Duration
	if n := len(script.Steps); n > 0 && script.Steps[n-1].At > end {
		end = script.Steps[n-1].At
	}

	next := 0
	for t := time.Duration(0); ; t += frame {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for next < len(script.Steps) && script.Steps[next].At <= t {
			st := script.Steps[next]
			s.advance(st.At)
			s.apply(eng, st)
			next++
		}
		s.advance(t)
		eng.Tick(s.now)
		s.metrics.Frames++

		if t >= end && next == len(script.Steps) && !eng.Pending() {
			break
		}
		if t > end+SettleLimit {
			return nil, fmt.Errorf("%w after %v", ErrUnsettled, t)
		}
	}

	s.metrics.EndTime = time.Now()
	s.metrics.SimulatedMs = float64(s.elapsed) / float64(time.Millisecond)
	s.metrics.Final = sampleOf(s.elapsed, eng.Transform())
	s.logger.Debug("replay finished",
		"frames", s.metrics.Frames,
		"steps", s.metrics.Steps,
		"final", eng.Transform().String())
	return &s.metrics, nil
}

func (s *Simulator) advance(d time.Duration) {
	s.elapsed = d
	s.now = epoch.Add(d)
}

func (s *Simulator) apply(eng *engine.Engine, st Step) {
	s.metrics.Steps++
	pos := core.Pt(st.X, st.Y)
	src := gesture.Mouse
	if st.Touch {
		src = gesture.Touch
	}
	ptr := gesture.PointerEvent{Position: pos, Button: gesture.ButtonPrimary, Source: src, Targets: st.Targets, Time: s.now}
	touches := gesture.TouchEvent{Touches: touchPoints(st.Touches), Targets: st.Targets, Time: s.now}

	switch st.Kind {
	case KindWheel:
		eng.Wheel(gesture.WheelEvent{Position: pos, DeltaX: st.DX, DeltaY: st.DY, Ctrl: st.Ctrl, Targets: st.Targets, Time: s.now})
	case KindDown:
		eng.PointerDown(ptr)
	case KindMove:
		eng.PointerMove(ptr)
	case KindUp:
		eng.PointerUp(ptr)
	case KindLeave:
		eng.PointerLeave(ptr)
	case KindTouchStart:
		eng.TouchStart(touches)
	case KindTouchMove:
		eng.TouchMove(touches)
	case KindTouchEnd:
		eng.TouchEnd(touches)
	case KindDoubleClick:
		eng.DoubleClick(ptr)
	case KindKeyDown:
		eng.KeyDown(st.Key)
	case KindKeyUp:
		eng.KeyUp(st.Key)
	case KindBlur:
		eng.Blur()
	case KindZoomIn:
		eng.ZoomIn(stepOpts(st)...)
	case KindZoomOut:
		eng.ZoomOut(stepOpts(st)...)
	case KindReset:
		eng.ResetTransform()
	case KindCenter:
		eng.CenterView()
	case KindSet:
		eng.SetTransform(st.Scale, st.X, st.Y)
	case KindCancel:
		eng.CancelAnimation()
	}
}

func stepOpts(st Step) []engine.ActionOption {
	if st.Scale > 0 {
		return []engine.ActionOption{engine.Step(st.Scale)}
	}
	return nil
}

func touchPoints(raw [][2]float64) []core.Point {
	pts := make([]core.Point, len(raw))
	for i, p := range raw {
		pts[i] = core.Pt(p[0], p[1])
	}
	return pts
}

// ExportMetrics writes the metrics of the last run to a JSON file.
func (s *Simulator) ExportMetrics(path string) error {
	data, err := json.MarshalIndent(s.metrics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// recorder counts engine callbacks into the run metrics.
type recorder struct{ s *Simulator }

func (r recorder) GestureStarted(family string) {
	r.s.metrics.Gestures[family]++
	if r.s.config.Recorder != nil {
		r.s.config.Recorder.GestureStarted(family)
	}
}

func (r recorder) TransformRejected() {
	r.s.metrics.Rejected++
	if r.s.config.Recorder != nil {
		r.s.config.Recorder.TransformRejected()
	}
}

func (r recorder) AnimationFinished(name, outcome string, d time.Duration) {
	r.s.metrics.Animations[name+":"+outcome]++
	if r.s.config.Recorder != nil {
		r.s.config.Recorder.AnimationFinished(name, outcome, d)
	}
}

var allEvents = []engine.EventName{
	engine.EventInit, engine.EventTransformChange,
	engine.EventWheelStart, engine.EventWheel, engine.EventWheelStop,
	engine.EventPanningStart, engine.EventPanning, engine.EventPanningStop,
	engine.EventPinchingStart, engine.EventPinching, engine.EventPinchingStop,
	engine.EventZoomStart, engine.EventZoom, engine.EventZoomStop,
}

// Result is the outcome of RunScript.
type Result struct {
	Metrics Metrics `json:"metrics"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// RunScript runs cfg under a wall-clock timeout.
func RunScript(cfg Config, timeout time.Duration) (*Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	metrics, err := NewSimulator(cfg).Run(ctx)
	result := &Result{Success: err == nil}
	if err != nil {
		result.Error = err.Error()
	}
	if metrics != nil {
		result.Metrics = *metrics
	}
	return result, err
}
