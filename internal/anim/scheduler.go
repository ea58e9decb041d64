package anim

import (
	"log/slog"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
)

// Sink receives every state the scheduler commits.
type Sink interface {
	SetTransform(scale, x, y float64) error
}

// State is the scheduler's lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	return [...]string{"Idle", "Running"}[s]
}

// Outcome records how an animation ended.
type Outcome int

const (
	Completed  Outcome = iota // reached its target
	Superseded                // replaced by a newer request
	Cancelled                 // stopped explicitly
)

func (o Outcome) String() string {
	return [...]string{"completed", "superseded", "cancelled"}[o]
}

// Handle describes one running transition.
type Handle struct {
	Name      string
	Start     core.Transform
	Target    core.Transform
	StartTime time.Time
	Duration  time.Duration
	Easing    Easing
}

// progress returns the eased progress at now, and whether the run is over.
func (h *Handle) progress(now time.Time) (float64, bool) {
	elapsed := now.Sub(h.StartTime)
	if elapsed >= h.Duration {
		return 1, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return h.Easing(float64(elapsed) / float64(h.Duration)), false
}

// Scheduler interpolates toward a target on every Tick. At most one
// handle is live; a new request replaces the old one outright.
type Scheduler struct {
	sink   Sink
	logger *slog.Logger

	state  State
	handle *Handle
	onDone func(Handle, Outcome)
}

// NewScheduler creates an idle scheduler committing to sink.
func NewScheduler(sink Sink, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sink:   sink,
		logger: logging.OrNop(logger),
	}
}

// OnDone registers fn to be told whenever a handle leaves the scheduler.
func (s *Scheduler) OnDone(fn func(Handle, Outcome)) {
	s.onDone = fn
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Running reports whether a handle is live.
func (s *Scheduler) Running() bool {
	return s.state == Running
}

// Current returns a copy of the live handle.
func (s *Scheduler) Current() (Handle, bool) {
	if s.handle == nil {
		return Handle{}, false
	}
	return *s.handle, true
}

// Animate starts a transition from start to target. A non-positive
// duration commits target immediately. It returns false, leaving any
// running animation untouched, when target is not finite.
func (s *Scheduler) Animate(name string, start, target core.Transform, d time.Duration, easing string, now time.Time) bool {
	if !target.Valid() {
		s.logger.Warn("animation target rejected", "animation", name, "target", target.String())
		return false
	}

	s.finish(Superseded)

	if d <= 0 {
		s.commit(name, target)
		s.done(Handle{Name: name, Start: start, Target: target, StartTime: now}, Completed)
		return true
	}

	fn, ok := Lookup(easing)
	if !ok {
		s.logger.Warn("unknown easing, using easeOut", "easing", easing)
		fn = easings[EaseOut]
	}

	s.handle = &Handle{
		Name:      name,
		Start:     start,
		Target:    target,
		StartTime: now,
		Duration:  d,
		Easing:    fn,
	}
	s.state = Running
	return true
}

// Tick advances the live handle to now and commits the interpolated
// state. It reports whether the scheduler is still running afterwards.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.state != Running {
		return false
	}

	h := s.handle
	p, last := h.progress(now)
	if last {
		// Leave Running before the final commit so a sink observer may
		// start a follow-up animation.
		s.handle = nil
		s.state = Idle
		s.commit(h.Name, h.Target)
		s.done(*h, Completed)
		return s.state == Running
	}
	s.commit(h.Name, h.Start.Lerp(h.Target, p))
	return s.state == Running
}

// Cancel stops the live handle without committing anything further.
func (s *Scheduler) Cancel() {
	s.finish(Cancelled)
}

func (s *Scheduler) finish(o Outcome) {
	if s.state != Running {
		return
	}
	h := *s.handle
	s.handle = nil
	s.state = Idle
	s.done(h, o)
}

func (s *Scheduler) done(h Handle, o Outcome) {
	if s.onDone != nil {
		s.onDone(h, o)
	}
}

func (s *Scheduler) commit(name string, t core.Transform) {
	if err := s.sink.SetTransform(t.Scale, t.X, t.Y); err != nil {
		s.logger.Debug("animation frame rejected", "animation", name, "err", err)
	}
}
