package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"placegrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventResultsLoaded     = domain.EventResultsLoaded
	EventResultsFailed     = domain.EventResultsFailed
	EventCameraFitted      = domain.EventCameraFitted
	EventExpansionChanged  = domain.EventExpansionChanged
	EventSelectionSurfaced = domain.EventSelectionSurfaced
	EventConfigLoaded      = domain.EventConfigLoaded
)

// Re-export domain event types
type ResultsLoadedEvent = domain.ResultsLoadedEvent
type ResultsFailedEvent = domain.ResultsFailedEvent
type CameraFittedEvent = domain.CameraFittedEvent
type ExpansionChangedEvent = domain.ExpansionChangedEvent
type SelectionSurfacedEvent = domain.SelectionSurfacedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	token   uint64
	handler EventHandler
}

// bus delivers events synchronously on the caller's goroutine.
// A Publish issued by a handler is queued and delivered once the
// current event has reached every subscriber.
type bus struct {
	mu          sync.Mutex
	handlers    map[EventType][]subscription
	nextToken   uint64
	dispatching bool
	pending     []DomainEvent
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.mu.Lock()
	if b.dispatching {
		b.pending = append(b.pending, event)
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	b.mu.Unlock()

	next := event
	for {
		b.deliver(next)

		b.mu.Lock()
		if len(b.pending) == 0 {
			b.dispatching = false
			b.mu.Unlock()
			return
		}
		next = b.pending[0]
		b.pending = b.pending[1:]
		b.mu.Unlock()
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextToken++
	token := b.nextToken
	b.handlers[eventType] = append(b.handlers[eventType], subscription{token: token, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.token == token {
				kept := make([]subscription, 0, len(subs)-1)
				kept = append(kept, subs[:i]...)
				b.handlers[eventType] = append(kept, subs[i+1:]...)
				return
			}
		}
	}
}

// deliver calls every handler registered for the event's type.
// It iterates a copy so handlers may unsubscribe while being called.
func (b *bus) deliver(event DomainEvent) {
	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.Unlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
