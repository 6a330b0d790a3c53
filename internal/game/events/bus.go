package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus delivers events synchronously. Handlers run on the publishing
// goroutine, so a turn is fully reported before the next one starts.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	handlers    map[string][]EventHandler
	logger      zerolog.Logger
}

func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates an event bus that logs through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]EventHandler),
		logger:      logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers s under s.ID(), replacing a subscriber with the same id
func (eb *EventBus) Subscribe(s Subscriber) {
	eb.mu.Lock()
	eb.subscribers[s.ID()] = s
	eb.mu.Unlock()

	eb.logger.Debug().Str("handler_id", s.ID()).Msg("Subscriber added")
}

func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	delete(eb.subscribers, id)
	eb.mu.Unlock()

	eb.logger.Debug().Str("handler_id", id).Msg("Subscriber removed")
}

// SubscribeFunc registers fn for a single event type and returns its handler id
func (eb *EventBus) SubscribeFunc(eventType string, fn EventHandler) string {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], fn)
	id := handlerID(eventType, len(eb.handlers[eventType])-1)
	eb.mu.Unlock()

	eb.logger.Debug().Str("handler_id", id).Msg("Function handler added")
	return id
}

// Publish hands event to every interested subscriber, then to the function
// handlers registered for its type. A panicking handler is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for id, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			eb.deliver(id, event, s.HandleEvent)
		}
	}
	for i, fn := range eb.handlers[eventType] {
		eb.deliver(handlerID(eventType, i), event, fn)
	}
}

func (eb *EventBus) deliver(id string, event Event, fn EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	fn(event)
}

func handlerID(eventType string, index int) string {
	return eventType + "#" + strconv.Itoa(index+1)
}
