package states

import (
	"errors"
	"time"
)

// InitializingState is the phase the machine starts in
type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }

func (s *InitializingState) Phase() Phase { return PhaseInitializing }

func (s *InitializingState) Enter(ctx *RunContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *RunContext) error {
	ctx.Logger.Debug().Int("tank_count", ctx.TankCount).Msg("Field initialized")
	return nil
}

func (s *InitializingState) Validate(ctx *RunContext) error { return nil }

// RunningState is active while turns are advanced
type RunningState struct{}

func NewRunningState() State { return &RunningState{} }

func (s *RunningState) Phase() Phase { return PhaseRunning }

func (s *RunningState) Enter(ctx *RunContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Int("tank_count", ctx.TankCount).Msg("Simulation running")
	return nil
}

func (s *RunningState) Exit(ctx *RunContext) error { return nil }

func (s *RunningState) Validate(ctx *RunContext) error {
	if ctx.TankCount < 1 {
		return errors.New("cannot run a simulation without tanks")
	}
	return nil
}

// EndedState is the normal terminal phase
type EndedState struct{}

func NewEndedState() State { return &EndedState{} }

func (s *EndedState) Phase() Phase { return PhaseEnded }

func (s *EndedState) Enter(ctx *RunContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().Dur("elapsed", ctx.Elapsed()).Msg("Simulation ended")
	return nil
}

func (s *EndedState) Exit(ctx *RunContext) error { return nil }

func (s *EndedState) Validate(ctx *RunContext) error { return nil }

// ErrorState is entered when a turn fails
type ErrorState struct{}

func NewErrorState() State { return &ErrorState{} }

func (s *ErrorState) Phase() Phase { return PhaseError }

func (s *ErrorState) Enter(ctx *RunContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Error().Err(ctx.Error).Msg("Simulation failed")
	return nil
}

func (s *ErrorState) Exit(ctx *RunContext) error { return nil }

func (s *ErrorState) Validate(ctx *RunContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires a cause")
	}
	return nil
}
