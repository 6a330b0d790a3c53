package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/tanks/internal/game/events"
)

// State represents a lifecycle phase with enter/exit callbacks
type State interface {
	Phase() Phase
	Enter(ctx *RunContext) error
	Exit(ctx *RunContext) error
	// Validate checks if the state may be entered given the context
	Validate(ctx *RunContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      Phase
	To        Phase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages lifecycle transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   Phase
	states         map[Phase]State
	context        *RunContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine in PhaseInitializing.
// publisher may be nil.
func NewStateMachine(ctx *RunContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[Phase]State),
		context:        ctx,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 100,
		publisher:      publisher,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewErrorState())

	return sm
}

// RegisterState registers or replaces a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current phase
func (sm *StateMachine) CurrentPhase() Phase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase Phase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			// Continue with transition despite exit error
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// Fail records err on the context and moves to PhaseError
func (sm *StateMachine) Fail(err error) error {
	sm.mu.Lock()
	sm.context.Error = err
	sm.mu.Unlock()

	return sm.TransitionTo(PhaseError, err.Error())
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the run context
func (sm *StateMachine) GetContext() *RunContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}
