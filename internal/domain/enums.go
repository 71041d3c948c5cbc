package domain

import "fmt"

// PlacementStatus tells the caller what a placement did to the board.
type PlacementStatus int

const (
	Applied           PlacementStatus = iota // occupancy changed
	NoOp                                     // item already sits in the target slot
	NeedsConfirmation                        // target holds another item and the dropped item is placed elsewhere
)

func (s PlacementStatus) String() string {
	switch s {
	case Applied:
		return "applied"
	case NoOp:
		return "noop"
	case NeedsConfirmation:
		return "needs_confirmation"
	default:
		return "unknown"
	}
}

func (s PlacementStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *PlacementStatus) UnmarshalText(b []byte) error {
	for _, v := range []PlacementStatus{Applied, NoOp, NeedsConfirmation} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown placement status %q", b)
}

// State is the session lifecycle of a phase controller.
type State int

const (
	Uninitialized State = iota
	PhaseOneActive
	PhaseTwoActive
	Finalized
)

func (s State) String() string {
	switch s {
	case PhaseOneActive:
		return "phase_one"
	case PhaseTwoActive:
		return "phase_two"
	case Finalized:
		return "finalized"
	default:
		return "uninitialized"
	}
}

// Transition is returned by a committed phase.
type Transition int

const (
	TransitionNextPhase Transition = iota + 1 // the second phase was loaded
	TransitionSave                            // both phases are committed; export next
)

func (t Transition) String() string {
	switch t {
	case TransitionNextPhase:
		return "next_phase"
	case TransitionSave:
		return "save"
	default:
		return "none"
	}
}
