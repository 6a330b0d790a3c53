package states

import "fmt"

// Phase represents the lifecycle phase of a simulation run
type Phase int

const (
	// PhaseInitializing - field construction and tank placement
	PhaseInitializing Phase = iota

	// PhaseRunning - turns are being advanced
	PhaseRunning

	// PhaseEnded - the turn budget was used up or the run was interrupted
	PhaseEnded

	// PhaseError - a turn failed
	PhaseError
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no further transitions are possible
func (p Phase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanAdvance returns true if turns may be played in this phase
func (p Phase) CanAdvance() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p Phase) AllowedTransitions() []Phase {
	switch p {
	case PhaseInitializing:
		return []Phase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []Phase{PhaseEnded, PhaseError}
	default:
		return []Phase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
