package board

import "github.com/daystram/sparring/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionRight
	CastleDirectionLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionRight:
		return "0-0"
	case CastleDirectionLeft:
		return "0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionRight
}

type castleGeometry struct {
	kingFrom, kingTo position.Pos
	transit          position.Pos
	rookFrom, rookTo position.Pos
	between          Bitmap
}

// castleGeometryFor resolves the squares involved when the king on kingFrom castles towards d.
// The rook is the one on the corner of the king's row.
func castleGeometryFor(kingFrom position.Pos, d CastleDirection) (castleGeometry, bool) {
	x, y := kingFrom.X(), kingFrom.Y()
	step, rookX := position.Pos(1), position.FileH
	if d == CastleDirectionLeft {
		step, rookX = -1, position.FileA
	}
	kingX := x + 2*step
	// the king must land strictly between its start and the rook
	if (step > 0 && kingX >= rookX) || (step < 0 && kingX <= rookX) {
		return castleGeometry{}, false
	}
	geo := castleGeometry{
		kingFrom: kingFrom,
		kingTo:   position.NewPos(kingX, y),
		transit:  position.NewPos(x+step, y),
		rookFrom: position.NewPos(rookX, y),
		rookTo:   position.NewPos(x+step, y),
	}
	for cx := x + step; cx != rookX; cx += step {
		geo.between.Set(position.NewPos(cx, y))
	}
	return geo, true
}
