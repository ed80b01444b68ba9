package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"sheetgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSheetPresented   = domain.EventSheetPresented
	EventDetentChanged    = domain.EventDetentChanged
	EventDismissAttempted = domain.EventDismissAttempted
	EventSheetWillDismiss = domain.EventSheetWillDismiss
	EventSheetDismissed   = domain.EventSheetDismissed
	EventDiagnostic       = domain.EventDiagnostic
	EventError            = domain.EventError
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
)

// Re-export domain event types
type SheetPresentedEvent = domain.SheetPresentedEvent
type DetentChangedEvent = domain.DetentChangedEvent
type DismissAttemptedEvent = domain.DismissAttemptedEvent
type SheetWillDismissEvent = domain.SheetWillDismissEvent
type SheetDismissedEvent = domain.SheetDismissedEvent
type DiagnosticEvent = domain.DiagnosticEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	// SubscribeAll receives every event regardless of type
	SubscribeAll(handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously on the publishing goroutine, in
// subscription order, so observers see sheet events in the order the
// controller emits them.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	all      []subscription
	nextID   uint64
	logger   *slog.Logger
}

// New creates a new event bus; a nil logger uses slog.Default()
func New(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger.With("component", "eventbus"),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}
	b.logger.Debug("publishing event", "type", string(event.Type()))

	b.mu.RLock()
	subs := make([]subscription, 0, len(b.handlers[event.Type()])+len(b.all))
	subs = append(subs, b.handlers[event.Type()]...)
	subs = append(subs, b.all...)
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(s.handler, event)
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType] = remove(b.handlers[eventType], id)
	}
}

func (b *bus) SubscribeAll(handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = remove(b.all, id)
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				"type", string(event.Type()),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	h(event)
}

func remove(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
