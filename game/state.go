package game

import "github.com/daystram/sparring/board"

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateCheckWhite is when White King is in check.
	StateCheckWhite

	// StateCheckBlack is when Black King is in check.
	StateCheckBlack

	// StateCheckmateWhite is when White King is in checkmate.
	StateCheckmateWhite

	// StateCheckmateBlack is when Black King is in checkmate.
	StateCheckmateBlack

	// StateStalemate is when the side to move cannot move a piece and its King is not in check.
	StateStalemate

	// StateDrawRepetition is when the same position has been reached three times.
	StateDrawRepetition
)

func stateCheck(s board.Side) State {
	if s == board.SideBlack {
		return StateCheckBlack
	}
	return StateCheckWhite
}

func stateCheckmate(s board.Side) State {
	if s == board.SideBlack {
		return StateCheckmateBlack
	}
	return StateCheckmateWhite
}

func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheck() bool {
	switch s {
	case StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheckmate() bool {
	switch s {
	case StateCheckmateWhite, StateCheckmateBlack:
		return true
	default:
		return false
	}
}

func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateDrawRepetition:
		return true
	default:
		return false
	}
}

// Winner returns the side that delivered checkmate, SideUnknown otherwise.
func (s State) Winner() board.Side {
	switch s {
	case StateCheckmateWhite:
		return board.SideBlack
	case StateCheckmateBlack:
		return board.SideWhite
	default:
		return board.SideUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheckWhite:
		return "StateCheckWhite"
	case StateCheckBlack:
		return "StateCheckBlack"
	case StateCheckmateWhite:
		return "StateCheckmateWhite"
	case StateCheckmateBlack:
		return "StateCheckmateBlack"
	case StateStalemate:
		return "StateStalemate"
	case StateDrawRepetition:
		return "StateDrawRepetition"
	default:
		return ""
	}
}
