package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/sparring/board"
)

func mustBoard(t *testing.T, fen string) (*board.Board, board.Side) {
	t.Helper()
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	require.NoError(t, err)
	return b, turn
}

// bruteForce is minimax without pruning or caching, over the same move order.
func bruteForce(b *board.Board, depth uint8, turn board.Side) (int32, board.Move) {
	if depth == 0 {
		return Evaluate(b), board.Move{}
	}
	mvs := orderedMoves(b, turn)
	if len(mvs) == 0 {
		return terminalScore(b, turn, depth), board.Move{}
	}
	bestScore := ScoreInfinite
	if turn == board.SideWhite {
		bestScore = -ScoreInfinite
	}
	var bestMove board.Move
	for _, mv := range mvs {
		unPlay := b.Play(mv)
		score, _ := bruteForce(b, depth-1, turn.Opposite())
		unPlay()
		if (turn == board.SideWhite && score > bestScore) || (turn == board.SideBlack && score < bestScore) {
			bestScore, bestMove = score, mv
		}
	}
	return bestScore, bestMove
}

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()
	e := NewEngine(nil)
	assert.Equal(t, DefaultDepth, e.Depth())
	assert.Equal(t, uint64(DefaultHashTableSize), e.tt.Size())
	assert.True(t, e.captureShortcut)

	e = NewEngine(&EngineConfig{Depth: 200, HashTableSize: 1000, DisableCaptureShortcut: true})
	assert.Equal(t, MaxDepth, e.Depth())
	assert.Equal(t, uint64(1024), e.tt.Size())
	assert.False(t, e.captureShortcut)
}

func TestAlphaBetaMatchesBruteForce(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen   string
		depth uint8
	}{
		{fen: board.DefaultStartingPositionFEN, depth: 3},
		{fen: "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", depth: 3},
		{fen: "4k3/8/8/3p4/4P3/8/8/4K3 b - - 0 1", depth: 4},
		{fen: "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", depth: 3},
		{fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", depth: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			b, turn := mustBoard(t, tt.fen)
			before := b.Clone()

			wantScore, wantMove := bruteForce(b, tt.depth, turn)

			e := NewEngine(&EngineConfig{Depth: tt.depth, HashTableSize: 1 << 16})
			e.rootDepth = tt.depth
			e.limits.Start(context.Background(), 0, 0)
			gotScore, gotMove := e.minimax(b, tt.depth, -ScoreInfinite, ScoreInfinite, turn)
			e.limits.Stop()

			assert.Equal(t, wantScore, gotScore)
			assert.True(t, wantMove.Equals(gotMove), "want %s got %s", wantMove, gotMove)
			assert.True(t, before.Equal(b))
			assert.Equal(t, before.Hash(), b.Hash())
		})
	}
}

func TestChooseMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		fen    string
		cfg    EngineConfig
		want   string
		reject string
	}{
		{
			name: "single capture is taken",
			fen:  "7k/8/4p3/3p4/8/8/8/3QK3 w - - 0 1",
			want: "d1d5",
		},
		{
			name:   "poisoned capture avoided without shortcut",
			fen:    "7k/8/4p3/3p4/8/8/8/3QK3 w - - 0 1",
			cfg:    EngineConfig{DisableCaptureShortcut: true},
			reject: "d1d5",
		},
		{
			name: "capture out of check",
			fen:  "3rk3/8/8/8/8/8/3p4/3QK3 w - - 0 1",
			want: "d1d2",
		},
		{
			name: "white mates in one",
			fen:  "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
			want: "a1a8",
		},
		{
			name: "black mates in one",
			fen:  "r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1",
			want: "a8a1",
		},
		{
			name: "black forks king and queen",
			fen:  "4k3/8/8/8/3n4/8/8/Q3K3 b - - 0 1",
			cfg:  EngineConfig{DisableCaptureShortcut: true},
			want: "d4c2",
		},
		{
			name: "promotes to queen",
			fen:  "7k/P7/8/8/8/8/8/K7 w - - 0 1",
			want: "a7a8q",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, turn := mustBoard(t, tt.fen)
			before := b.Clone()

			cfg := tt.cfg
			cfg.HashTableSize = 1 << 16
			mv, err := NewEngine(&cfg).ChooseMove(context.Background(), b, turn)
			require.NoError(t, err)
			if tt.want != "" {
				assert.Equal(t, tt.want, mv.UCI())
			}
			if tt.reject != "" {
				assert.NotEqual(t, tt.reject, mv.UCI())
			}
			assert.True(t, before.Equal(b))
			assert.Equal(t, before.Hash(), b.Hash())
		})
	}
}

func TestChooseMoveNoLegalMove(t *testing.T) {
	t.Parallel()
	for _, fen := range []string{
		"k7/2Q5/8/8/8/8/8/7K b - - 0 1",
		"3R2k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
	} {
		b, turn := mustBoard(t, fen)
		_, err := NewEngine(nil).ChooseMove(context.Background(), b, turn)
		assert.ErrorIs(t, err, ErrNoLegalMove)
	}
}

func TestChooseMoveReusesTranspositions(t *testing.T) {
	t.Parallel()
	b, turn := mustBoard(t, board.DefaultStartingPositionFEN)
	e := NewEngine(&EngineConfig{HashTableSize: 1 << 16})

	first, err := e.ChooseMove(context.Background(), b, turn)
	require.NoError(t, err)
	firstNodes := e.Nodes()
	_, _, writes := e.tt.Stats()
	assert.Positive(t, writes)

	second, err := e.ChooseMove(context.Background(), b, turn)
	require.NoError(t, err)
	hits, _, _ := e.tt.Stats()
	assert.True(t, first.Equals(second))
	assert.Positive(t, hits)
	assert.Less(t, e.Nodes(), firstNodes)
}

func TestChooseMoveLimits(t *testing.T) {
	t.Parallel()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		cfg  EngineConfig
	}{
		{name: "node limit", ctx: context.Background(), cfg: EngineConfig{Depth: 6, NodeLimit: 200}},
		{name: "movetime", ctx: context.Background(), cfg: EngineConfig{Depth: 8, Movetime: 50 * time.Millisecond}},
		{name: "canceled context", ctx: canceled, cfg: EngineConfig{Depth: 6}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, turn := mustBoard(t, board.DefaultStartingPositionFEN)
			before := b.Clone()

			cfg := tt.cfg
			cfg.HashTableSize = 1 << 16
			e := NewEngine(&cfg)
			mv, err := e.ChooseMove(tt.ctx, b, turn)
			require.NoError(t, err)

			legal := false
			for _, lm := range b.GenerateMoves(turn) {
				legal = legal || lm.Equals(mv)
			}
			assert.True(t, legal, "%s is not legal", mv)
			if tt.cfg.NodeLimit != 0 {
				assert.LessOrEqual(t, e.Nodes(), tt.cfg.NodeLimit+1)
			}
			assert.True(t, before.Equal(b))
			assert.Equal(t, before.Hash(), b.Hash())
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want int32
	}{
		{name: "starting position is even", fen: board.DefaultStartingPositionFEN, want: 0},
		{name: "kings only", fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", want: 0},
		{name: "white queen on d1", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", want: 900 - 5},
		{name: "black queen on d8", fen: "3qk3/8/8/8/8/8/8/4K3 w - - 0 1", want: -(900 - 5)},
		{name: "advanced white pawn", fen: "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", want: 150},
		{name: "advanced black pawn", fen: "4k3/8/8/8/8/8/p7/4K3 w - - 0 1", want: -150},
		{name: "white knight in the center", fen: "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", want: 340},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _ := mustBoard(t, tt.fen)
			assert.Equal(t, tt.want, Evaluate(b))
		})
	}
}

func TestOrderedMoves(t *testing.T) {
	t.Parallel()
	b, turn := mustBoard(t, "3rk3/8/8/8/3n4/8/3p4/3QK3 w - - 0 1")
	mvs := orderedMoves(b, turn)
	require.NotEmpty(t, mvs)
	assert.Equal(t, "d1d2", mvs[0].UCI())
	for i := 1; i < len(mvs); i++ {
		assert.GreaterOrEqual(t, scoreMove(b, mvs[i-1]), scoreMove(b, mvs[i]))
	}
}
