package engine

import (
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// EventName identifies a lifecycle notification.
type EventName string

const (
	EventInit            EventName = "init"
	EventTransformChange EventName = "transformChange"

	EventWheelStart EventName = "wheelStart"
	EventWheel      EventName = "wheel"
	EventWheelStop  EventName = "wheelStop"

	EventPanningStart EventName = "panningStart"
	EventPanning      EventName = "panning"
	EventPanningStop  EventName = "panningStop"

	EventPinchingStart EventName = "pinchingStart"
	EventPinching      EventName = "pinching"
	EventPinchingStop  EventName = "pinchingStop"

	EventZoomStart EventName = "zoomStart"
	EventZoom      EventName = "zoom"
	EventZoomStop  EventName = "zoomStop"
)

// Event is delivered to handlers registered with On.
type Event struct {
	Name          EventName
	Transform     core.Transform
	PreviousScale float64
	// Source is the input event that caused the notification, if any.
	Source any
}

// Handler receives engine events.
type Handler func(Event)

type subscription struct {
	fn Handler
}

// subscriptions is the per-engine handler table.
type subscriptions struct {
	table map[EventName][]*subscription
}

func newSubscriptions() *subscriptions {
	return &subscriptions{table: make(map[EventName][]*subscription)}
}

func (s *subscriptions) add(name EventName, fn Handler) func() {
	sub := &subscription{fn: fn}
	s.table[name] = append(s.table[name], sub)
	return func() {
		list := s.table[name]
		for i, x := range list {
			if x == sub {
				s.table[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (s *subscriptions) emit(ev Event) {
	list := s.table[ev.Name]
	if len(list) == 0 {
		return
	}
	// Handlers may unsubscribe while being called.
	for _, sub := range append([]*subscription(nil), list...) {
		sub.fn(ev)
	}
}

func (s *subscriptions) len() int {
	n := 0
	for _, l := range s.table {
		n += len(l)
	}
	return n
}

func (s *subscriptions) clear() {
	clear(s.table)
}
