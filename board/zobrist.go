package board

import "github.com/daystram/sparring/position"

// Zobrist holds one random key per (side, kind, square) triple.
type Zobrist struct {
	piece [2 + 1][6 + 1][TotalCells]uint64
	turn  [2 + 1]uint64
}

func NewZobrist(seed uint64) *Zobrist {
	z := &Zobrist{}
	r := NewPseudoRand(seed)
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, k := range Kinds {
			for pos := position.Pos(0); pos < TotalCells; pos++ {
				z.piece[s][k][pos] = r.Uint64()
			}
		}
	}
	z.turn[SideWhite] = r.Uint64()
	z.turn[SideBlack] = r.Uint64()
	return z
}

// Key returns the key of a piece standing on pos. Empty squares hash to zero.
func (z *Zobrist) Key(pos position.Pos, p Piece) uint64 {
	if p.IsEmpty() {
		return 0
	}
	return z.piece[p.Side][p.Kind][pos]
}

// Turn returns the side-to-move key. Position hashes never include it.
func (z *Zobrist) Turn(s Side) uint64 {
	return z.turn[s]
}

// Hash computes the hash of every occupied square from scratch.
func (z *Zobrist) Hash(b *Board) uint64 {
	var h uint64
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		h ^= z.Key(pos, b.cells[pos])
	}
	return h
}
