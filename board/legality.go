package board

import (
	"github.com/daystram/sparring/position"
)

// Threats returns every square attacked by s. Pawns attack both diagonals whether or not
// they are occupied; castling hops never attack.
func (b *Board) Threats(s Side) Bitmap {
	var bm Bitmap
	for _, from := range b.sides[s].Positions() {
		p := b.cells[from]
		switch p.Kind {
		case KindPawn:
			for _, dx := range []position.Pos{-1, 1} {
				if diag, ok := from.Offset(dx, s.Forward()); ok {
					bm.Set(diag)
				}
			}
		case KindKing:
			bm |= genSteps(b, from, p, offsetsKing)
		default:
			bm |= generators[p.Kind](b, from, p)
		}
	}
	return bm
}

// IsInCheck reports whether the king of s stands on a square attacked by the opponent.
func (b *Board) IsInCheck(s Side) bool {
	return b.Threats(s.Opposite()).Has(b.King(s))
}

// IsSafe reports whether moving the piece on from to to leaves its own king unattacked.
// The move is played on the board and undone before returning. Castling additionally
// requires the king not to start in check nor cross an attacked square.
func (b *Board) IsSafe(from, to position.Pos) bool {
	p, ok := b.PieceAt(from)
	if !ok {
		return false
	}
	mv := Move{Piece: p, From: from, To: to}
	if d := mv.Castle(); d != CastleDirectionUnknown {
		geo, ok := castleGeometryFor(from, d)
		if !ok {
			return false
		}
		threats := b.Threats(p.Side.Opposite())
		if threats.Has(from) || threats.Has(geo.transit) {
			return false
		}
	}
	unPlay := b.Play(mv)
	defer unPlay()
	return !b.IsInCheck(p.Side)
}

// LegalMoves returns the destinations of the piece on pos that keep its king safe.
func (b *Board) LegalMoves(pos position.Pos) []position.Pos {
	var out []position.Pos
	for _, to := range b.Destinations(pos).Positions() {
		if b.IsSafe(pos, to) {
			out = append(out, to)
		}
	}
	return out
}

// HasLegalMove reports whether s can make at least one move.
func (b *Board) HasLegalMove(s Side) bool {
	for _, from := range b.sides[s].Positions() {
		for _, to := range b.Destinations(from).Positions() {
			if b.IsSafe(from, to) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether s is in check with no legal move.
func (b *Board) IsCheckmate(s Side) bool {
	return b.IsInCheck(s) && !b.HasLegalMove(s)
}

// IsStalemate reports whether s is not in check but has no legal move.
func (b *Board) IsStalemate(s Side) bool {
	return !b.IsInCheck(s) && !b.HasLegalMove(s)
}
