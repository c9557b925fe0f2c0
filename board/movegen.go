package board

import (
	"github.com/daystram/sparring/position"
)

// Rows on which a pawn may take an adjacent pawn that has moved exactly once.
const (
	adjacentCaptureRowLow  = position.Rank4
	adjacentCaptureRowHigh = position.Rank5
)

type generator func(b *Board, from position.Pos, p Piece) Bitmap

var generators = [6 + 1]generator{
	KindPawn:   genPawn,
	KindBishop: genBishop,
	KindKnight: genKnight,
	KindRook:   genRook,
	KindQueen:  genQueen,
	KindKing:   genKing,
}

// Destinations generates the pseudo-legal destinations of the piece on from.
// The mover's own king may be left attacked; see IsSafe.
func (b *Board) Destinations(from position.Pos) Bitmap {
	p, ok := b.PieceAt(from)
	if !ok {
		return 0
	}
	return generators[p.Kind](b, from, p)
}

// GenerateMoves lists the legal moves of s, origins and destinations in ascending square order.
// Pawn moves onto the last row carry no promotion kind.
func (b *Board) GenerateMoves(s Side) []Move {
	var mvs []Move
	for _, from := range b.sides[s].Positions() {
		p := b.cells[from]
		for _, to := range b.Destinations(from).Positions() {
			if b.IsSafe(from, to) {
				mvs = append(mvs, Move{Piece: p, From: from, To: to})
			}
		}
	}
	return mvs
}

func (b *Board) isEnemy(pos position.Pos, s Side) bool {
	return b.sides[s.Opposite()].Has(pos)
}

func (b *Board) isEmpty(pos position.Pos) bool {
	return !b.occupied.Has(pos)
}

func genPawn(b *Board, from position.Pos, p Piece) Bitmap {
	var bm Bitmap
	fwd := p.Side.Forward()
	if one, ok := from.Offset(0, fwd); ok && b.isEmpty(one) {
		bm.Set(one)
		if two, ok := from.Offset(0, 2*fwd); ok && p.Moves == 0 && b.isEmpty(two) {
			bm.Set(two)
		}
	}
	for _, dx := range []position.Pos{-1, 1} {
		diag, ok := from.Offset(dx, fwd)
		if !ok {
			continue
		}
		if b.isEnemy(diag, p.Side) {
			bm.Set(diag)
			continue
		}
		if b.isEmpty(diag) && canCaptureAdjacent(b, from, dx, p.Side) {
			bm.Set(diag)
		}
	}
	return bm
}

// canCaptureAdjacent approximates en passant: an enemy pawn beside the mover that has moved
// exactly once, with the mover on the fourth or fifth row.
func canCaptureAdjacent(b *Board, from, dx position.Pos, s Side) bool {
	if y := from.Y(); y != adjacentCaptureRowLow && y != adjacentCaptureRowHigh {
		return false
	}
	side, ok := from.Offset(dx, 0)
	if !ok {
		return false
	}
	other := b.cells[side]
	return other.Is(s.Opposite(), KindPawn) && other.Moves == 1
}

func genKnight(b *Board, from position.Pos, p Piece) Bitmap {
	return genSteps(b, from, p, offsetsKnight)
}

func genBishop(b *Board, from position.Pos, p Piece) Bitmap {
	return genRays(b, from, p, raysBishop)
}

func genRook(b *Board, from position.Pos, p Piece) Bitmap {
	return genRays(b, from, p, raysRook)
}

func genQueen(b *Board, from position.Pos, p Piece) Bitmap {
	return genRays(b, from, p, raysQueen)
}

func genKing(b *Board, from position.Pos, p Piece) Bitmap {
	return genSteps(b, from, p, offsetsKing) | genCastling(b, from, p)
}

func genSteps(b *Board, from position.Pos, p Piece, offsets []offset) Bitmap {
	var bm Bitmap
	for _, o := range offsets {
		to, ok := from.Offset(o.dx, o.dy)
		if !ok || b.sides[p.Side].Has(to) {
			continue
		}
		bm.Set(to)
	}
	return bm
}

func genRays(b *Board, from position.Pos, p Piece, rays []offset) Bitmap {
	var bm Bitmap
	for _, r := range rays {
		bm |= genRay(b, from, p.Side, r)
	}
	return bm
}

// genRay walks one direction until the board edge or the first occupied square,
// which is included only when it holds an enemy piece.
func genRay(b *Board, from position.Pos, s Side, r offset) Bitmap {
	var bm Bitmap
	for to, ok := from.Offset(r.dx, r.dy); ok; to, ok = to.Offset(r.dx, r.dy) {
		if b.sides[s].Has(to) {
			break
		}
		bm.Set(to)
		if b.occupied.Has(to) {
			break
		}
	}
	return bm
}

// genCastling adds the two-square king hop towards each unmoved rook with an empty path.
// Attacked squares are rejected later by IsSafe.
func genCastling(b *Board, from position.Pos, p Piece) Bitmap {
	var bm Bitmap
	if p.Moves != 0 {
		return bm
	}
	for _, d := range []CastleDirection{CastleDirectionRight, CastleDirectionLeft} {
		geo, ok := castleGeometryFor(from, d)
		if !ok {
			continue
		}
		rook := b.cells[geo.rookFrom]
		if !rook.Is(p.Side, KindRook) || rook.Moves != 0 {
			continue
		}
		if b.occupied&geo.between != 0 {
			continue
		}
		bm.Set(geo.kingTo)
	}
	return bm
}
