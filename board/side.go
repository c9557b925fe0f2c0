package board

import "github.com/daystram/sparring/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Forward is the row increment of a pawn of this side.
func (s Side) Forward() position.Pos {
	if s == SideBlack {
		return -1
	}
	return 1
}

// HomeRow is the row the side's pieces start on.
func (s Side) HomeRow() position.Pos {
	if s == SideBlack {
		return position.Rank8
	}
	return position.Rank1
}

// PawnRow is the row the side's pawns start on.
func (s Side) PawnRow() position.Pos {
	return s.HomeRow() + s.Forward()
}

// LastRow is the row a pawn of this side promotes on.
func (s Side) LastRow() position.Pos {
	return s.Opposite().HomeRow()
}
