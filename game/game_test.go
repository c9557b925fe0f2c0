package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/engine"
	"github.com/daystram/sparring/position"
)

func mustPos(t *testing.T, notation string) position.Pos {
	t.Helper()
	pos, err := position.NewPosFromNotation(notation)
	require.NoError(t, err)
	return pos
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		require.NoError(t, g.Play(mustPos(t, mv[:2]), mustPos(t, mv[2:4])), mv)
	}
}

func newTestEngine() *engine.Engine {
	return engine.NewEngine(&engine.EngineConfig{HashTableSize: 1 << 16})
}

func TestFoolsMate(t *testing.T) {
	t.Parallel()
	var ended []State
	g, err := NewGame(WithOnEnd(func(s State) { ended = append(ended, s) }))
	require.NoError(t, err)

	play(t, g, "f2f3", "e7e5", "g2g4")
	assert.Equal(t, StateRunning, g.State())
	assert.Empty(t, ended)

	play(t, g, "d8h4")
	assert.Equal(t, StateCheckmateWhite, g.State())
	assert.Equal(t, board.SideBlack, g.State().Winner())
	assert.True(t, g.IsOver())
	assert.True(t, g.IsCheckmate(board.SideWhite))
	assert.False(t, g.IsCheckmate(board.SideBlack))
	assert.True(t, g.IsInCheck(board.SideWhite))
	assert.Equal(t, []State{StateCheckmateWhite}, ended)

	assert.ErrorIs(t, g.Play(position.E2, position.E4), ErrGameOver)
	_, err = g.AIMove(context.Background())
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, g.Promote(position.E8, board.KindQueen), ErrGameOver)
	assert.Nil(t, g.LegalMoves(position.E2))
	assert.Equal(t, []State{StateCheckmateWhite}, ended)
	assert.Len(t, g.Moves(), 4)
}

func TestThreefoldRepetition(t *testing.T) {
	t.Parallel()
	var ended []State
	g, err := NewGame(WithOnEnd(func(s State) { ended = append(ended, s) }))
	require.NoError(t, err)

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for i, mv := range shuffle {
		play(t, g, mv)
		assert.Equal(t, StateRunning, g.State(), "after half-move %d", i+1)
		assert.False(t, g.IsDrawByRepetition())
	}
	assert.Len(t, g.History(), len(shuffle))
	assert.Equal(t, g.History()[0], g.History()[4])

	// the position after g1f3 is now recorded for the third time
	play(t, g, "g1f3")
	assert.Equal(t, StateDrawRepetition, g.State())
	assert.True(t, g.State().IsDraw())
	assert.True(t, g.IsDrawByRepetition())
	assert.Equal(t, []State{StateDrawRepetition}, ended)
	assert.ErrorIs(t, g.Play(position.G8, position.F6), ErrGameOver)
}

func TestStalemate(t *testing.T) {
	t.Parallel()
	var ended []State
	g, err := NewGame(
		WithFEN("k1K5/8/8/8/8/8/8/1Q6 w - - 0 1"),
		WithOnEnd(func(s State) { ended = append(ended, s) }),
	)
	require.NoError(t, err)

	play(t, g, "b1b6")
	assert.Equal(t, StateStalemate, g.State())
	assert.True(t, g.IsStalemate(board.SideBlack))
	assert.False(t, g.IsCheckmate(board.SideBlack))
	assert.Equal(t, board.SideUnknown, g.State().Winner())
	assert.Equal(t, []State{StateStalemate}, ended)
}

func TestTerminalPositionLoaded(t *testing.T) {
	t.Parallel()
	var ended []State
	g, err := NewGame(
		WithFEN("3R2k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"),
		WithOnEnd(func(s State) { ended = append(ended, s) }),
	)
	require.NoError(t, err)
	assert.Equal(t, StateCheckmateBlack, g.State())
	assert.Equal(t, []State{StateCheckmateBlack}, ended)

	_, err = NewGame(WithFEN("not a fen"))
	assert.ErrorIs(t, err, board.ErrInvalidFEN)
}

func TestPlayErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "empty square", from: "e4", to: "e5", wantErr: ErrNoPiece},
		{name: "opponent piece", from: "e7", to: "e5", wantErr: ErrNotYourTurn},
		{name: "pawn triple step", from: "e2", to: "e5", wantErr: ErrIllegalMove},
		{name: "onto own piece", from: "d1", to: "d2", wantErr: ErrIllegalMove},
		{name: "knight jump", from: "b1", to: "c3", wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGame()
			require.NoError(t, err)
			err = g.Play(mustPos(t, tt.from), mustPos(t, tt.to))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, board.SideWhite, g.Turn())
				assert.Empty(t, g.Moves())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, board.SideBlack, g.Turn())
		})
	}
}

func TestPromotionFlow(t *testing.T) {
	t.Parallel()
	g, err := NewGame(WithFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1"))
	require.NoError(t, err)

	assert.ErrorIs(t, g.Promote(position.A8, board.KindQueen), ErrNoPromotionPending)

	play(t, g, "a7a8")
	pos, ok := g.PendingPromotion()
	require.True(t, ok)
	assert.Equal(t, position.A8, pos)
	assert.Equal(t, board.SideWhite, g.Turn())
	assert.Empty(t, g.History())
	assert.Nil(t, g.LegalMoves(position.A1))

	assert.ErrorIs(t, g.Play(position.A1, position.A2), ErrPromotionPending)
	_, err = g.AIMove(context.Background())
	assert.ErrorIs(t, err, ErrPromotionPending)
	assert.ErrorIs(t, g.Promote(position.A8, board.KindKing), ErrInvalidPromotion)
	assert.ErrorIs(t, g.Promote(position.A8, board.KindPawn), ErrInvalidPromotion)
	assert.ErrorIs(t, g.Promote(position.B8, board.KindQueen), ErrInvalidPromotion)

	require.NoError(t, g.Promote(position.A8, board.KindKnight))
	p, ok := g.PieceAt(position.A8)
	require.True(t, ok)
	assert.Equal(t, board.KindKnight, p.Kind)
	assert.Equal(t, board.SideBlack, g.Turn())
	assert.Len(t, g.History(), 1)
	assert.Equal(t, "a7a8n", g.Moves()[0].UCI())
	assert.ErrorIs(t, g.Promote(position.A8, board.KindQueen), ErrNoPromotionPending)
}

func TestCastlingAndFEN(t *testing.T) {
	t.Parallel()
	g, err := NewGame(WithFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	require.NoError(t, err)

	play(t, g, "e1g1")
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1", g.FEN())
	play(t, g, "e8c8")
	assert.Equal(t, "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2", g.FEN())

	g, err = NewGame()
	require.NoError(t, err)
	play(t, g, "e2e4")
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", g.FEN())
	play(t, g, "e7e5", "g1f3")
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", g.FEN())
}

func TestAdjacentPawnCapture(t *testing.T) {
	t.Parallel()
	g, err := NewGame()
	require.NoError(t, err)

	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "e5d6")
	_, ok := g.PieceAt(position.D5)
	assert.False(t, ok)
	assert.Equal(t, "rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3", g.FEN())
}

func TestLegalMovesOnlyForSideToMove(t *testing.T) {
	t.Parallel()
	g, err := NewGame()
	require.NoError(t, err)

	assert.ElementsMatch(t, []position.Pos{position.E3, position.E4}, g.LegalMoves(position.E2))
	assert.Nil(t, g.LegalMoves(position.E7))
	assert.Nil(t, g.LegalMoves(position.E4))
}

func TestAIMove(t *testing.T) {
	t.Parallel()
	g, err := NewGame(WithAI(board.SideBlack), WithEngine(newTestEngine()))
	require.NoError(t, err)
	assert.False(t, g.IsAITurn())

	play(t, g, "e2e4")
	assert.True(t, g.IsAITurn())
	mv, err := g.AIMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, board.SideBlack, mv.Piece.Side)
	assert.Equal(t, board.SideWhite, g.Turn())
	assert.Len(t, g.Moves(), 2)
	assert.Len(t, g.History(), 2)
	assert.False(t, g.IsAITurn())
}

func TestAIMovePromotesToQueen(t *testing.T) {
	t.Parallel()
	g, err := NewGame(WithFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1"), WithEngine(newTestEngine()))
	require.NoError(t, err)

	mv, err := g.AIMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a7a8q", mv.UCI())
	p, ok := g.PieceAt(position.A8)
	require.True(t, ok)
	assert.Equal(t, board.KindQueen, p.Kind)
	_, pending := g.PendingPromotion()
	assert.False(t, pending)
	assert.Equal(t, board.SideBlack, g.Turn())
	assert.Equal(t, StateCheckBlack, g.State())
}

func TestAIMoveDeliversMate(t *testing.T) {
	t.Parallel()
	var ended []State
	g, err := NewGame(
		WithFEN("r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1"),
		WithAI(board.SideBlack),
		WithEngine(newTestEngine()),
		WithOnEnd(func(s State) { ended = append(ended, s) }),
	)
	require.NoError(t, err)
	require.True(t, g.IsAITurn())

	mv, err := g.AIMove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a8a1", mv.UCI())
	assert.Equal(t, StateCheckmateWhite, g.State())
	assert.Equal(t, []State{StateCheckmateWhite}, ended)
	assert.False(t, g.IsAITurn())
}
