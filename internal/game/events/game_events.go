package events

import (
	"time"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
)

// Event type constants
const (
	TypeSimulationStarted = "simulation.started"
	TypeSimulationEnded   = "simulation.ended"
	TypeTurnStarted       = "turn.started"
	TypeTurnEnded         = "turn.ended"
	TypeTankRotated       = "tank.rotated"
	TypeTankMoved         = "tank.moved"
	TypeStateTransition   = "state.transition"
)

// TankRef identifies a tank inside an event
type TankRef struct {
	ID    string `json:"id,omitempty"`
	Glyph string `json:"glyph"`
}

// RefOf builds a TankRef, picking up the tank id when the player has one
func RefOf(p core.Visual) TankRef {
	ref := TankRef{Glyph: p.String()}
	if identified, ok := p.(interface{ ID() string }); ok {
		ref.ID = identified.ID()
	}
	return ref
}

// SimulationStartedEvent is published once the field is populated
type SimulationStartedEvent struct {
	BaseEvent
	FieldSize int
	Tanks     []TankRef
}

// NewSimulationStartedEvent creates a new SimulationStartedEvent
func NewSimulationStartedEvent(gameID string, fieldSize int, tanks []TankRef) *SimulationStartedEvent {
	return &SimulationStartedEvent{
		BaseEvent: newBase(TypeSimulationStarted, gameID),
		FieldSize: fieldSize,
		Tanks:     tanks,
	}
}

// SimulationEndedEvent is published when the driver loop stops
type SimulationEndedEvent struct {
	BaseEvent
	FinalTurn int
	Duration  time.Duration
	Reason    string
}

// NewSimulationEndedEvent creates a new SimulationEndedEvent
func NewSimulationEndedEvent(gameID string, finalTurn int, duration time.Duration, reason string) *SimulationEndedEvent {
	return &SimulationEndedEvent{
		BaseEvent: newBase(TypeSimulationEnded, gameID),
		FinalTurn: finalTurn,
		Duration:  duration,
		Reason:    reason,
	}
}

// TurnStartedEvent is published at the beginning of each turn
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		TurnNumber: turn,
	}
}

// TurnEndedEvent is published at the end of each turn
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int
	TanksMoved    int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn, tanksMoved int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		TurnNumber:    turn,
		TanksMoved:    tanksMoved,
		ProcessedTime: processedTime,
	}
}

// TankRotatedEvent is published for every boundary correction
type TankRotatedEvent struct {
	BaseEvent
	TurnNumber int
	Tank       TankRef
	From       core.Direction
	To         core.Direction
}

// NewTankRotatedEvent creates a new TankRotatedEvent
func NewTankRotatedEvent(gameID string, turn int, tank TankRef, from, to core.Direction) *TankRotatedEvent {
	return &TankRotatedEvent{
		BaseEvent:  newBase(TypeTankRotated, gameID),
		TurnNumber: turn,
		Tank:       tank,
		From:       from,
		To:         to,
	}
}

// TankMovedEvent is published after a tank advanced one step
type TankMovedEvent struct {
	BaseEvent
	TurnNumber int
	Tank       TankRef
	From       core.Position
	To         core.Position
	Direction  core.Direction
	// Shared is true when another tank already stands on To
	Shared bool
}

// NewTankMovedEvent creates a new TankMovedEvent
func NewTankMovedEvent(gameID string, turn int, tank TankRef, from, to core.Position, dir core.Direction, shared bool) *TankMovedEvent {
	return &TankMovedEvent{
		BaseEvent:  newBase(TypeTankMoved, gameID),
		TurnNumber: turn,
		Tank:       tank,
		From:       from,
		To:         to,
		Direction:  dir,
		Shared:     shared,
	}
}

// StateTransitionEvent is published when the lifecycle state machine changes phase
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
