package events

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus is a synchronous event bus. Subscribers run on the publishing
// goroutine; a panicking subscriber is isolated so it cannot take the
// battle down with it.
type EventBus struct {
	subscribers  map[string]Subscriber
	funcHandlers map[string][]EventHandler
	mu           sync.RWMutex
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]EventHandler),
		logger:       log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus.
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for a specific event type and
// returns an identifier for it.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)

	handlerID := fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// Publish sends an event to all interested subscribers synchronously.
// Subscribers fire in ID order so two identical battles produce
// identical event logs. Delivery happens outside the lock; a handler
// may subscribe or unsubscribe mid-event without deadlocking.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	ids := make([]string, 0, len(eb.subscribers))
	for id, subscriber := range eb.subscribers {
		if subscriber.InterestedIn(eventType) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	subs := make([]Subscriber, len(ids))
	for i, id := range ids {
		subs[i] = eb.subscribers[id]
	}
	handlers := append([]EventHandler(nil), eb.funcHandlers[eventType]...)
	eb.mu.RUnlock()

	for i, subscriber := range subs {
		eb.deliver(event, subscriber.HandleEvent, func(ev *zerolog.Event) {
			ev.Str("subscriber_id", ids[i])
		})
	}
	for i, handler := range handlers {
		eb.deliver(event, handler, func(ev *zerolog.Event) {
			ev.Int("handler_index", i)
		})
	}
}

// deliver invokes one handler, turning a panic into an error log entry
// so a broken observer cannot take the battle down.
func (eb *EventBus) deliver(event Event, handle EventHandler, annotate func(*zerolog.Event)) {
	defer func() {
		if r := recover(); r != nil {
			ev := eb.logger.Error().
				Str("event_type", event.Type()).
				Interface("panic", r)
			annotate(ev)
			ev.Msg("Handler panicked while handling event")
		}
	}()
	handle(event)
}

// SubscriberCount returns the number of object subscribers.
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// FuncHandlerCount returns the number of function handlers for an event type.
func (eb *EventBus) FuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
