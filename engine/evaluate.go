package engine

import (
	"cmp"
	"slices"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/position"
)

var (
	scorePiece = [6 + 1]int32{
		board.KindPawn:   100,
		board.KindKnight: 320,
		board.KindBishop: 330,
		board.KindRook:   500,
		board.KindQueen:  900,
		board.KindKing:   0,
	}

	// PST rows run from White's far side (rank 8) down to its back rank (rank 1).
	scorePiecePosition = [6 + 1][position.MaxComponentScalar][position.MaxComponentScalar]int32{
		board.KindPawn: {
			{0, 0, 0, 0, 0, 0, 0, 0},
			{50, 50, 50, 50, 50, 50, 50, 50},
			{10, 10, 20, 30, 30, 20, 10, 10},
			{5, 5, 10, 25, 25, 10, 5, 5},
			{0, 0, 0, 20, 20, 0, 0, 0},
			{5, -5, -10, 0, 0, -10, -5, 5},
			{5, 10, 10, -20, -20, 10, 10, 5},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		board.KindKnight: {
			{-50, -40, -30, -30, -30, -30, -40, -50},
			{-40, -20, 0, 5, 5, 0, -20, -40},
			{-30, 5, 10, 15, 15, 10, 5, -30},
			{-30, 0, 15, 20, 20, 15, 0, -30},
			{-30, 5, 15, 20, 20, 15, 5, -30},
			{-30, 0, 10, 15, 15, 10, 0, -30},
			{-40, -20, 0, 0, 0, 0, -20, -40},
			{-50, -40, -30, -30, -30, -30, -40, -50},
		},
		board.KindBishop: {
			{-20, -10, -10, -10, -10, -10, -10, -20},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-10, 0, 5, 10, 10, 5, 0, -10},
			{-10, 5, 5, 10, 10, 5, 5, -10},
			{-10, 0, 10, 10, 10, 10, 0, -10},
			{-10, 10, 10, 10, 10, 10, 10, -10},
			{-10, 5, 0, 0, 0, 0, 5, -10},
			{-20, -10, -10, -10, -10, -10, -10, -20},
		},
		board.KindRook: {
			{0, 0, 0, 0, 0, 0, 0, 0},
			{5, 10, 10, 10, 10, 10, 10, 5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{0, 0, 0, 5, 5, 0, 0, 0},
		},
		board.KindQueen: {
			{-20, -10, -10, -5, -5, -10, -10, -20},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-10, 0, 5, 5, 5, 5, 0, -10},
			{-5, 0, 5, 5, 5, 5, 0, -5},
			{0, 0, 5, 5, 5, 5, 0, -5},
			{-10, 5, 5, 5, 5, 5, 0, -10},
			{-10, 0, 5, 0, 0, 0, 0, -10},
			{-20, -10, -10, -5, -5, -10, -10, -20},
		},
		board.KindKing: {
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-20, -30, -30, -40, -40, -30, -30, -20},
			{-10, -20, -20, -20, -20, -20, -20, -10},
			{20, 20, 0, 0, 0, 0, 20, 20},
			{20, 30, 10, 0, 0, 10, 30, 20},
		},
	}

	offsetCapture int32 = 1000
)

// Evaluate returns the static score of the board from White's point of view: material plus
// piece-square bonus, White's pieces added and Black's subtracted. Black reads the tables
// mirrored by row.
func Evaluate(b *board.Board) int32 {
	var score int32
	for _, k := range board.Kinds {
		for _, pos := range b.GetBitmap(board.SideWhite, k).Positions() {
			score += scorePiece[k] + scorePiecePosition[k][position.Rank8-pos.Y()][pos.X()]
		}
		for _, pos := range b.GetBitmap(board.SideBlack, k).Positions() {
			score -= scorePiece[k] + scorePiecePosition[k][pos.Y()][pos.X()]
		}
	}
	return score
}

// scoreMove is the ordering key: a capture of value V sorts as offsetCapture+V, anything else as 0.
func scoreMove(b *board.Board, mv board.Move) int32 {
	captured, ok := b.PieceAt(mv.To)
	if !ok || captured.Side == mv.Piece.Side || scorePiece[captured.Kind] == 0 {
		return 0
	}
	return offsetCapture + scorePiece[captured.Kind]
}

// orderedMoves returns the legal moves of s, best ordering key first. Ties keep generation order.
// Pawns reaching the last row are taken as queen promotions.
func orderedMoves(b *board.Board, s board.Side) []board.Move {
	mvs := b.GenerateMoves(s)
	for i := range mvs {
		if mvs[i].IsPromotion() {
			mvs[i].Promote = board.KindQueen
		}
	}
	slices.SortStableFunc(mvs, func(a, c board.Move) int {
		return cmp.Compare(scoreMove(b, c), scoreMove(b, a))
	})
	return mvs
}
