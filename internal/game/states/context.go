package states

import (
	"time"

	"github.com/rs/zerolog"
)

// RunContext carries what the lifecycle states need to know about a run
type RunContext struct {
	// GameID uniquely identifies this run
	GameID string

	Logger zerolog.Logger

	TankCount int

	// StartTime is set when PhaseRunning is entered
	StartTime time.Time

	// EndTime is set when a terminal phase is entered
	EndTime time.Time

	// Error holds the failure that caused the transition to PhaseError
	Error error
}

// NewRunContext creates a new run context
func NewRunContext(gameID string, tankCount int, logger zerolog.Logger) *RunContext {
	return &RunContext{
		GameID:    gameID,
		TankCount: tankCount,
		Logger:    logger.With().Str("game_id", gameID).Logger(),
	}
}

// Elapsed returns the running time, up to EndTime once the run is over
func (rc *RunContext) Elapsed() time.Duration {
	if rc.StartTime.IsZero() {
		return 0
	}
	if !rc.EndTime.IsZero() {
		return rc.EndTime.Sub(rc.StartTime)
	}
	return time.Since(rc.StartTime)
}
