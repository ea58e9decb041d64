// Package engine turns pointer, wheel and touch input into a bounded
// pan/zoom transform for one viewport.
//
// An Engine is owned by the goroutine that delivers input. Every entry
// point, including Tick, must be called from that goroutine. After
// Close every entry point is a no-op.
package engine

import (
	"log/slog"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/anim"
	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/gesture"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
	"github.com/elektrokombinacija/gio-panzoom/internal/state"
)

const (
	// WheelStopDelay is the quiet period that ends a wheel session.
	WheelStopDelay = 160 * time.Millisecond
	// DoubleTapWindow is the longest gap between two taps of a double tap.
	DoubleTapWindow = 200 * time.Millisecond
)

// Recorder receives activity counts. metrics.Recorder implements it.
type Recorder interface {
	GestureStarted(family string)
	TransformRejected()
	AnimationFinished(name, outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) GestureStarted(string)                           {}
func (nopRecorder) TransformRejected()                              {}
func (nopRecorder) AnimationFinished(string, string, time.Duration) {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(l) }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRecorder reports activity to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.rec = r
		}
	}
}

// WithHandler registers fn for name before the engine mounts.
func WithHandler(name EventName, fn Handler) Option {
	return func(e *Engine) { e.subs.add(name, fn) }
}

// deadline is a single-shot timer checked by Tick.
type deadline struct {
	at    time.Time
	armed bool
}

func (d *deadline) arm(at time.Time) { d.at, d.armed = at, true }
func (d *deadline) clear()           { *d = deadline{} }

func (d *deadline) due(now time.Time) bool {
	return d.armed && !now.Before(d.at)
}

func (d *deadline) pending(now time.Time) bool {
	return d.armed && now.Before(d.at)
}

// Engine arbitrates gestures, animations and API calls over one store.
type Engine struct {
	opts   config.Options
	logger *slog.Logger
	now    func() time.Time
	rec    Recorder

	store *state.Store
	sched *anim.Scheduler
	keys  *gesture.KeyState
	subs  *subscriptions

	wheel *gesture.WheelSession
	pan   *gesture.PanSession
	pinch *gesture.PinchSession

	wheelStop deadline
	doubleTap deadline

	unsubscribe func()
	mounted     bool
	closed      bool
}

// New creates an engine at the configured initial transform.
func New(opts config.Options, options ...Option) *Engine {
	e := &Engine{
		opts:   opts,
		logger: logging.NewNop(),
		now:    time.Now,
		rec:    nopRecorder{},
		keys:   gesture.NewKeyState(),
		subs:   newSubscriptions(),
	}
	for _, o := range options {
		o(e)
	}

	if err := opts.Validate(); err != nil {
		e.logger.Warn("inconsistent configuration, normalising", "error", err)
	}

	e.store = state.NewStore(opts, e.logger)
	e.store.OnReject(func(error) { e.rec.TransformRejected() })
	e.unsubscribe = e.store.Subscribe(func(t core.Transform, prev float64) {
		e.subs.emit(Event{Name: EventTransformChange, Transform: t, PreviousScale: prev})
	})

	e.sched = anim.NewScheduler(e.store, e.logger)
	e.sched.OnDone(func(h anim.Handle, o anim.Outcome) {
		e.rec.AnimationFinished(h.Name, o.String(), h.Duration)
		e.logger.Debug("animation finished", "animation", h.Name, "outcome", o)
	})
	return e
}

// On registers fn for name and returns a function that removes it.
func (e *Engine) On(name EventName, fn Handler) (off func()) {
	if e.closed {
		return func() {}
	}
	return e.subs.add(name, fn)
}

// Transform returns the committed transform.
func (e *Engine) Transform() core.Transform { return e.store.Transform() }

// State is an alias of Transform for the imperative API.
func (e *Engine) State() core.Transform { return e.store.Transform() }

// PreviousScale returns the scale before the last commit.
func (e *Engine) PreviousScale() float64 { return e.store.PreviousScale() }

// Bounds returns the translation bounds at the current scale.
func (e *Engine) Bounds() core.Bounds { return e.store.Bounds() }

// BoundsAt returns the translation bounds at scale.
func (e *Engine) BoundsAt(scale float64) core.Bounds { return e.store.BoundsAt(scale) }

// Viewport returns the last known viewport size.
func (e *Engine) Viewport() core.Size { return e.store.Viewport() }

// Content returns the last known content size.
func (e *Engine) Content() core.Size { return e.store.Content() }

// Options returns the configuration the engine was built with.
func (e *Engine) Options() config.Options { return e.opts }

// Keys returns the held-key record.
func (e *Engine) Keys() *gesture.KeyState { return e.keys }

// Panning reports whether a pan session is active.
func (e *Engine) Panning() bool { return e.pan != nil }

// Pinching reports whether a pinch session is active.
func (e *Engine) Pinching() bool { return e.pinch != nil }

// Animating reports whether an animation is running.
func (e *Engine) Animating() bool { return e.sched.Running() }

// Resize records the viewport and content sizes and re-clamps.
func (e *Engine) Resize(viewport, content core.Size) {
	if e.closed {
		return
	}
	if err := e.store.Resize(viewport, content); err != nil {
		e.logger.Debug("resize rejected", "error", err)
	}
}

// Mount applies bounds to the initial transform, centres it when
// configured, and emits EventInit. Later calls do nothing.
func (e *Engine) Mount() {
	if e.closed || e.mounted {
		return
	}
	e.mounted = true
	if e.opts.CenterOnInit {
		e.CenterView(Duration(0))
	} else {
		e.commit(e.store.Transform())
	}
	e.emit(EventInit, nil)
}

// Tick advances the running animation and fires due deadlines. It
// reports whether the host should schedule another frame.
func (e *Engine) Tick(now time.Time) bool {
	if e.closed {
		return false
	}
	running := e.sched.Tick(now)
	if e.wheelStop.due(now) {
		e.wheelStop.clear()
		e.stopWheel()
	}
	if e.doubleTap.due(now) {
		e.doubleTap.clear()
	}
	return running || e.wheelStop.armed
}

// Pending reports whether an animation or the wheel-stop deadline
// still needs frames.
func (e *Engine) Pending() bool {
	return !e.closed && (e.sched.Running() || e.wheelStop.armed)
}

// Close cancels the animation, clears deadlines and sessions, and
// removes every handler.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.sched.Cancel()
	e.wheelStop.clear()
	e.doubleTap.clear()
	e.wheel, e.pan, e.pinch = nil, nil, nil
	e.keys.Reset()
	e.unsubscribe()
	e.subs.clear()
	e.closed = true
}

func (e *Engine) commit(t core.Transform) {
	if err := e.store.Set(t); err != nil {
		e.logger.Debug("commit rejected", "error", err)
	}
}

func (e *Engine) emit(name EventName, src any) {
	e.subs.emit(Event{
		Name:          name,
		Transform:     e.store.Transform(),
		PreviousScale: e.store.PreviousScale(),
		Source:        src,
	})
}

// clampTarget applies scale limits and bounds to an animation target
// so the last frame is the state the store keeps.
func (e *Engine) clampTarget(t core.Transform) core.Transform {
	if !t.Valid() {
		return t
	}
	s := e.opts.ClampScale(t.Scale)
	pos := e.store.BoundsAt(s).Clamp(t.Position())
	return core.Transform{Scale: s, X: pos.X, Y: pos.Y}
}

func (e *Engine) eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return e.now()
	}
	return t
}
