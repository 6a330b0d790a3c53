package events

import "github.com/mitchelldurbincs/tanks/internal/game/core"

// FieldPublisher turns field notifications into bus events.
// It satisfies game.Observer without the field knowing about the bus.
type FieldPublisher struct {
	pub    Publisher
	gameID string
	turn   func() int
}

// NewFieldPublisher creates a new adapter. turn reports the turn in progress.
func NewFieldPublisher(pub Publisher, gameID string, turn func() int) *FieldPublisher {
	return &FieldPublisher{pub: pub, gameID: gameID, turn: turn}
}

// TankRotated publishes a TankRotatedEvent
func (a *FieldPublisher) TankRotated(p core.Player, from, to core.Direction) {
	a.pub.Publish(NewTankRotatedEvent(a.gameID, a.turn(), RefOf(p), from, to))
}

// TankMoved publishes a TankMovedEvent
func (a *FieldPublisher) TankMoved(p core.Player, from, to core.Position, shared bool) {
	a.pub.Publish(NewTankMovedEvent(a.gameID, a.turn(), RefOf(p), from, to, p.Direction(), shared))
}
