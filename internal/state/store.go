// Package state holds the authoritative transform of a viewport.
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
)

// ErrNonFinite is returned when a proposed transform has a NaN or
// infinite component. The store keeps its previous state.
var ErrNonFinite = errors.New("non-finite transform value")

// Observer is notified synchronously after each accepted commit.
type Observer func(t core.Transform, previousScale float64)

// Store is the single writer of the transform. It is not safe for
// concurrent use; it belongs to the goroutine that handles input.
type Store struct {
	opts   config.Options
	logger *slog.Logger

	viewport core.Size
	content  core.Size

	current       core.Transform
	previousScale float64

	observers []*Observer
	onReject  func(error)

	warnedInverted bool
}

// NewStore creates a store at the configured initial transform. Bounds
// are not applied until Resize supplies the viewport and content sizes.
func NewStore(opts config.Options, logger *slog.Logger) *Store {
	init := opts.Initial()
	return &Store{
		opts:          opts,
		logger:        logging.OrNop(logger),
		current:       init,
		previousScale: init.Scale,
	}
}

// OnReject registers fn to be called for every rejected commit.
func (s *Store) OnReject(fn func(error)) {
	s.onReject = fn
}

// Transform returns the committed transform.
func (s *Store) Transform() core.Transform {
	return s.current
}

// PreviousScale returns the scale before the last commit.
func (s *Store) PreviousScale() float64 {
	return s.previousScale
}

// Viewport returns the last known viewport size.
func (s *Store) Viewport() core.Size {
	return s.viewport
}

// Content returns the last known unscaled content size.
func (s *Store) Content() core.Size {
	return s.content
}

// BoundsAt returns the translation bounds at scale.
func (s *Store) BoundsAt(scale float64) core.Bounds {
	if s.viewport.Empty() || s.content.Empty() {
		// Nothing measured yet: limiting against a zero box would pin
		// everything to the origin.
		return core.Unbounded
	}
	b := core.ComputeBounds(scale, s.viewport, s.content, s.opts.Bounds())
	if b.Inverted() && !s.warnedInverted {
		s.warnedInverted = true
		s.logger.Warn("position overrides invert the bounds, clamping to the minimum edge",
			"minX", b.MinX, "maxX", b.MaxX, "minY", b.MinY, "maxY", b.MaxY, "scale", scale)
	}
	return b
}

// Bounds returns the translation bounds at the current scale.
func (s *Store) Bounds() core.Bounds {
	return s.BoundsAt(s.current.Scale)
}

// SetTransform validates, clamps and commits a new transform, then
// notifies observers. It is the only way the transform changes.
func (s *Store) SetTransform(scale, x, y float64) error {
	if !core.Finite(scale) || !core.Finite(x) || !core.Finite(y) {
		err := fmt.Errorf("%w: scale=%v x=%v y=%v", ErrNonFinite, scale, x, y)
		s.logger.Warn("transform rejected", "error", err)
		if s.onReject != nil {
			s.onReject(err)
		}
		return err
	}

	scale = s.opts.ClampScale(scale)
	pos := s.BoundsAt(scale).Clamp(core.Pt(x, y))

	s.previousScale = s.current.Scale
	s.current = core.Transform{Scale: scale, X: pos.X, Y: pos.Y}

	for _, o := range slices.Clone(s.observers) {
		(*o)(s.current, s.previousScale)
	}
	return nil
}

// Set commits t through SetTransform.
func (s *Store) Set(t core.Transform) error {
	return s.SetTransform(t.Scale, t.X, t.Y)
}

// Resize records new viewport and content sizes and re-clamps the
// current transform against the recomputed bounds.
func (s *Store) Resize(viewport, content core.Size) error {
	if viewport == s.viewport && content == s.content {
		return nil
	}
	s.viewport = viewport
	s.content = content
	return s.Set(s.current)
}

// Subscribe adds an observer and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	p := &fn
	s.observers = append(s.observers, p)
	return func() {
		for i, o := range s.observers {
			if o == p {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}
