package core

// Action is a discrete input event delivered by the input collaborator
type Action uint8

const (
	ActionNone Action = iota
	ActionAdvance
	ActionReverse
	ActionTurnLeft
	ActionTurnRight
	ActionJump
	ActionToggleFirstPerson
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionReverse:
		return "reverse"
	case ActionTurnLeft:
		return "turn_left"
	case ActionTurnRight:
		return "turn_right"
	case ActionJump:
		return "jump"
	case ActionToggleFirstPerson:
		return "toggle_first_person"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// IsMovement reports actions handled by the movement state machine
func (a Action) IsMovement() bool {
	return a >= ActionAdvance && a <= ActionTurnRight
}
