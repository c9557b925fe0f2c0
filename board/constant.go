package board

import (
	"github.com/daystram/sparring/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = position.TotalCells

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	defaultZobristSeed uint64 = 7
)

type offset struct {
	dx, dy position.Pos
}

var (
	maskCell [TotalCells]Bitmap
	maskRow  [Height]Bitmap
	maskCol  [Width]Bitmap

	offsetsKnight = []offset{{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}, {1, 2}, {2, 1}, {2, -1}, {1, -2}}
	offsetsKing   = []offset{{0, -1}, {-1, 0}, {0, 1}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

	raysBishop = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	raysRook   = []offset{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}
	raysQueen  = append(append([]offset{}, raysRook...), raysBishop...)

	defaultZobrist *Zobrist
)

func init() {
	initMask()
	defaultZobrist = NewZobrist(defaultZobristSeed)
}

func initMask() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCell[pos] = 1 << pos
		maskRow[pos.Y()] |= maskCell[pos]
		maskCol[pos.X()] |= maskCell[pos]
	}
}
