// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	CursorMoved       Type = "cursor_moved"
	MarkerPlaced      Type = "marker_placed"
	ShipArrived       Type = "ship_arrived"
	FPSSampled        Type = "fps_sampled"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe. Cancel removes the handler; it is
// safe to call more than once.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// Copy so a Publish iterating the old slice is unaffected.
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			b.handlers[eventType] = append(next, subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// MarkerEvent is published when the pointer moves the position marker
type MarkerEvent struct {
	BaseEvent
	MarkerID uint64
	Position mgl32.Vec3
}

// NewMarkerEvent creates a new marker-placed event
func NewMarkerEvent(source interface{}, markerID uint64, position mgl32.Vec3) *MarkerEvent {
	return &MarkerEvent{
		BaseEvent: BaseEvent{
			EventType: MarkerPlaced,
			Source:    source,
		},
		MarkerID: markerID,
		Position: position,
	}
}

// CursorEvent carries the ground projection of the pointer
type CursorEvent struct {
	BaseEvent
	Position mgl32.Vec3
}

// NewCursorEvent creates a new cursor-moved event
func NewCursorEvent(source interface{}, position mgl32.Vec3) *CursorEvent {
	return &CursorEvent{
		BaseEvent: BaseEvent{
			EventType: CursorMoved,
			Source:    source,
		},
		Position: position,
	}
}

// ShipEvent contains information about ship-related events
type ShipEvent struct {
	BaseEvent
	ShipID   uint64
	Position mgl32.Vec3
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, position mgl32.Vec3) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:   shipID,
		Position: position,
	}
}

// FPSEvent is published each time the overlay samples the frame rate
type FPSEvent struct {
	BaseEvent
	Average float64
	Label   string
}

// NewFPSEvent creates a new fps-sampled event
func NewFPSEvent(source interface{}, average float64, label string) *FPSEvent {
	return &FPSEvent{
		BaseEvent: BaseEvent{
			EventType: FPSSampled,
			Source:    source,
		},
		Average: average,
		Label:   label,
	}
}
