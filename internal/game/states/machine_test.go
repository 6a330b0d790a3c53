package states

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/tanks/internal/game/events"
	"github.com/mitchelldurbincs/tanks/internal/testutil"
)

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhaseEnded, "Ended"},
		{PhaseError, "Error"},
		{Phase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestPhase_Properties(t *testing.T) {
	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.True(t, PhaseError.IsTerminal())
		assert.False(t, PhaseRunning.IsTerminal())
		assert.False(t, PhaseInitializing.IsTerminal())
	})

	t.Run("CanAdvance", func(t *testing.T) {
		assert.True(t, PhaseRunning.CanAdvance())
		assert.False(t, PhaseInitializing.CanAdvance())
		assert.False(t, PhaseEnded.CanAdvance())
	})
}

func TestPhase_Transitions(t *testing.T) {
	tests := []struct {
		from    Phase
		to      Phase
		allowed bool
	}{
		{PhaseInitializing, PhaseRunning, true},
		{PhaseInitializing, PhaseError, true},
		{PhaseInitializing, PhaseEnded, false},
		{PhaseRunning, PhaseEnded, true},
		{PhaseRunning, PhaseError, true},
		{PhaseRunning, PhaseInitializing, false},
		{PhaseEnded, PhaseRunning, false},
		{PhaseError, PhaseRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func newTestMachine(tanks int) (*StateMachine, *events.EventBus) {
	bus := events.NewEventBusWithLogger(testutil.NopLogger())
	ctx := NewRunContext("test-run", tanks, testutil.NopLogger())
	return NewStateMachine(ctx, bus), bus
}

func TestStateMachine_HappyPath(t *testing.T) {
	sm, bus := newTestMachine(2)

	var published []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		published = append(published, e.(*events.StateTransitionEvent))
	})

	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseRunning, "field ready"))
	assert.Equal(t, PhaseRunning, sm.CurrentPhase())
	assert.False(t, sm.GetContext().StartTime.IsZero())

	require.NoError(t, sm.TransitionTo(PhaseEnded, "turn budget reached"))
	assert.Equal(t, PhaseEnded, sm.CurrentPhase())
	assert.GreaterOrEqual(t, sm.GetContext().Elapsed().Nanoseconds(), int64(0))

	history := sm.GetHistory()
	require.Len(t, history, 2)
	assert.Equal(t, PhaseInitializing, history[0].From)
	assert.Equal(t, PhaseRunning, history[0].To)
	assert.Equal(t, "turn budget reached", history[1].Reason)

	require.Len(t, published, 2)
	assert.Equal(t, "Running", published[0].ToPhase)
	assert.Equal(t, "test-run", published[1].GameID())
}

func TestStateMachine_RejectsInvalidTransition(t *testing.T) {
	sm, _ := newTestMachine(2)

	err := sm.TransitionTo(PhaseEnded, "skip running")

	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Empty(t, sm.GetHistory())
}

func TestStateMachine_RunningRequiresTanks(t *testing.T) {
	sm, _ := newTestMachine(0)

	err := sm.TransitionTo(PhaseRunning, "no tanks")

	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

func TestStateMachine_Fail(t *testing.T) {
	sm, _ := newTestMachine(2)
	require.NoError(t, sm.TransitionTo(PhaseRunning, "field ready"))

	cause := errors.New("rotation exhausted")
	require.NoError(t, sm.Fail(cause))

	assert.Equal(t, PhaseError, sm.CurrentPhase())
	assert.ErrorIs(t, sm.GetContext().Error, cause)
	assert.True(t, sm.CurrentPhase().IsTerminal())

	// Terminal phases accept nothing
	assert.Error(t, sm.TransitionTo(PhaseRunning, "retry"))
}

func TestStateMachine_ErrorStateRequiresCause(t *testing.T) {
	sm, _ := newTestMachine(2)

	err := sm.TransitionTo(PhaseError, "no cause")

	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

type failingEnterState struct{ RunningState }

func (s *failingEnterState) Enter(ctx *RunContext) error { return errors.New("enter failed") }

func TestStateMachine_RollsBackOnEnterFailure(t *testing.T) {
	sm, _ := newTestMachine(2)
	sm.RegisterState(&failingEnterState{})

	err := sm.TransitionTo(PhaseRunning, "field ready")

	assert.Error(t, err)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

func TestStateMachine_NilPublisher(t *testing.T) {
	ctx := NewRunContext("quiet", 1, testutil.NopLogger())
	sm := NewStateMachine(ctx, nil)

	assert.NotPanics(t, func() {
		require.NoError(t, sm.TransitionTo(PhaseRunning, "field ready"))
	})
}
