package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/sparring/position"
)

var testPositions = []string{
	DefaultStartingPositionFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r3k2r/pppp1ppp/8/3Pp3/8/8/PPP1PPPP/R3K2R w KQkq e6 0 3",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 b kq - 0 1",
}

func mustBoard(t *testing.T, fen string) (*Board, Side) {
	t.Helper()
	b, turn, err := NewBoard(WithFEN(fen))
	require.NoError(t, err)
	return b, turn
}

func mustMove(t *testing.T, b *Board, uci string) Move {
	t.Helper()
	require.GreaterOrEqual(t, len(uci), 4)
	from, err := position.NewPosFromNotation(uci[:2])
	require.NoError(t, err)
	to, err := position.NewPosFromNotation(uci[2:4])
	require.NoError(t, err)
	p, ok := b.PieceAt(from)
	require.True(t, ok, "no piece on %s", from)
	mv := Move{Piece: p, From: from, To: to}
	if len(uci) == 5 {
		for _, k := range PawnPromoteCandidates {
			if k.SymbolFEN(SideBlack) == uci[4:] {
				mv.Promote = k
			}
		}
	}
	return mv
}

func TestApplyUndoIsExactInverse(t *testing.T) {
	t.Parallel()
	for _, fen := range testPositions {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			b, turn := mustBoard(t, fen)
			before := b.Clone()

			for _, mv := range b.GenerateMoves(turn) {
				captured := b.ApplyMove(mv.From, mv.To)
				moved, ok := b.PieceAt(mv.To)
				require.True(t, ok)
				assert.Equal(t, mv.Piece.Moves+1, moved.Moves)
				b.UndoMove(mv.From, mv.To, captured)
				require.True(t, before.Equal(b), "ApplyMove/UndoMove %s", mv)
				require.Equal(t, before.Hash(), b.Hash())

				mv.Promote = KindUnknown
				if mv.IsPromotion() {
					mv.Promote = KindQueen
				}
				unPlay := b.Play(mv)
				assert.Equal(t, b.ComputeHash(), b.Hash())
				unPlay()
				require.True(t, before.Equal(b), "Play/unPlay %s", mv)
				require.Equal(t, before.Hash(), b.Hash())
			}
		})
	}
}

func TestPlaySideEffects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		fen       string
		moves     []string
		wantEmpty []position.Pos
		wantAt    map[position.Pos]Piece
	}{
		{
			name:      "castle right",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			moves:     []string{"e1g1"},
			wantEmpty: []position.Pos{position.E1, position.H1},
			wantAt: map[position.Pos]Piece{
				position.G1: {Side: SideWhite, Kind: KindKing, Moves: 1},
				position.F1: {Side: SideWhite, Kind: KindRook, Moves: 1},
			},
		},
		{
			name:      "castle left",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			moves:     []string{"e8c8"},
			wantEmpty: []position.Pos{position.E8, position.A8, position.B8},
			wantAt: map[position.Pos]Piece{
				position.C8: {Side: SideBlack, Kind: KindKing, Moves: 1},
				position.D8: {Side: SideBlack, Kind: KindRook, Moves: 1},
			},
		},
		{
			name:      "adjacent pawn capture",
			fen:       DefaultStartingPositionFEN,
			moves:     []string{"e2e4", "a7a6", "e4e5", "d7d5", "e5d6"},
			wantEmpty: []position.Pos{position.D5, position.E5},
			wantAt: map[position.Pos]Piece{
				position.D6: {Side: SideWhite, Kind: KindPawn, Moves: 3},
			},
		},
		{
			name:      "promotion",
			fen:       "8/P6k/8/8/8/8/8/K7 w - - 0 1",
			moves:     []string{"a7a8n"},
			wantEmpty: []position.Pos{position.A7},
			wantAt: map[position.Pos]Piece{
				position.A8: {Side: SideWhite, Kind: KindKnight, Moves: 3},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _ := mustBoard(t, tt.fen)
			start := b.Clone()
			var undo []func()
			for _, uci := range tt.moves {
				undo = append(undo, b.Play(mustMove(t, b, uci)))
			}
			for _, pos := range tt.wantEmpty {
				_, ok := b.PieceAt(pos)
				assert.False(t, ok, "%s should be empty", pos)
			}
			for pos, want := range tt.wantAt {
				got, ok := b.PieceAt(pos)
				require.True(t, ok, "%s should be occupied", pos)
				assert.Equal(t, want, got, pos)
			}
			assert.Equal(t, b.ComputeHash(), b.Hash())

			for i := len(undo) - 1; i >= 0; i-- {
				undo[i]()
			}
			assert.True(t, start.Equal(b))
			assert.Equal(t, start.Hash(), b.Hash())
		})
	}
}

func TestPromote(t *testing.T) {
	t.Parallel()
	b, _ := mustBoard(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")

	assert.ErrorIs(t, b.Promote(position.A7, KindQueen), ErrNotPromotion)

	b.Play(mustMove(t, b, "a7a8"))
	assert.ErrorIs(t, b.Promote(position.A8, KindKing), ErrNotPromotion)
	assert.ErrorIs(t, b.Promote(position.A8, KindPawn), ErrNotPromotion)
	require.NoError(t, b.Promote(position.A8, KindQueen))

	p, ok := b.PieceAt(position.A8)
	require.True(t, ok)
	assert.Equal(t, Piece{Side: SideWhite, Kind: KindQueen, Moves: 3}, p)
	assert.Equal(t, b.ComputeHash(), b.Hash())
}

func TestKingNotFoundPanics(t *testing.T) {
	t.Parallel()
	b, _, err := NewBoard(WithEmpty())
	require.NoError(t, err)
	b.Place(position.E1, NewPiece(SideWhite, KindKing))
	b.Place(position.D2, NewPiece(SideWhite, KindRook))
	b.Place(position.D7, NewPiece(SideBlack, KindRook))

	assert.Panics(t, func() { b.IsInCheck(SideBlack) })
	assert.Panics(t, func() { b.IsSafe(position.D7, position.D2) })
	assert.NotPanics(t, func() { b.IsSafe(position.D2, position.D7) })
}
