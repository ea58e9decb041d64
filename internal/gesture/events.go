// Package gesture recognises wheel, pan, pinch and double-click input.
//
// Recognizers never write state. Each one checks admissibility against a
// read-only Context and turns events into target transforms; the engine
// decides whether to commit them directly or animate toward them.
package gesture

import (
	"slices"
	"time"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// Source identifies the device behind a pointer event.
type Source int

const (
	Mouse Source = iota
	Touch
)

func (s Source) String() string {
	return [...]string{"mouse", "touch"}[s]
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonTertiary
)

// PointerEvent is a mouse press, move or release, or a single touch
// promoted to a pointer.
type PointerEvent struct {
	Position core.Point
	Button   Button
	Source   Source
	// Targets names the elements under the pointer, innermost first.
	Targets []string
	Time    time.Time
}

// WheelEvent is a scroll wheel or touchpad scroll.
type WheelEvent struct {
	Position core.Point
	DeltaX   float64
	DeltaY   float64
	// Ctrl is set for ctrl+wheel, which touchpads emit for pinch.
	Ctrl    bool
	Targets []string
	Time    time.Time
}

// TouchEvent lists the touches still in contact after the event.
type TouchEvent struct {
	Touches []core.Point
	Targets []string
	Time    time.Time
}

// Context is the read side of the engine a recognizer may consult.
type Context interface {
	Transform() core.Transform
	BoundsAt(scale float64) core.Bounds
	Viewport() core.Size
	Options() config.Options
	Keys() *KeyState
	Panning() bool
}

// Excluded reports whether any target appears in the excluded list.
func Excluded(targets, excluded []string) bool {
	for _, t := range targets {
		if slices.Contains(excluded, t) {
			return true
		}
	}
	return false
}
