package events

import "time"

// Event is anything published on the bus
type Event interface {
	Type() string
	Timestamp() time.Time
	// GameID identifies the simulation run the event belongs to
	GameID() string
}

// BaseEvent carries the fields every event shares; concrete events embed it
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

type EventHandler func(Event)

// Subscriber receives every event it declares interest in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the side of the bus the engine, the field and the runner see
type Publisher interface {
	Publish(Event)
}
