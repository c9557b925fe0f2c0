package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/sparring/board"
)

const (
	ScoreInfinite int32 = math.MaxInt32

	DefaultDepth uint8 = 3
	MaxDepth     uint8 = 16

	scoreCheckmate int32 = 1 << 20
)

var ErrNoLegalMove = errors.New("no legal move")

func NopLogger(...any) {}

type EngineConfig struct {
	Depth         uint8
	HashTableSize uint64
	// NodeLimit and Movetime bound a single search; zero disables them.
	NodeLimit uint64
	Movetime  time.Duration
	// DisableCaptureShortcut always runs the full search, even when a capture is available.
	DisableCaptureShortcut bool
	Logger                 func(...any)
	Debug                  bool
}

type Engine struct {
	tt     *TranspositionTable
	limits *Limits

	depth           uint8
	rootDepth       uint8
	nodeLimit       uint64
	movetime        time.Duration
	captureShortcut bool

	nodes       uint64
	elapsedTime time.Duration
	logger      func(...any)
	debug       bool
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = NopLogger
	}
	depth := cfg.Depth
	if depth == 0 {
		depth = DefaultDepth
	}
	depth = min(depth, MaxDepth)

	return &Engine{
		tt:              NewTranspositionTable(cfg.HashTableSize),
		limits:          NewLimits(),
		depth:           depth,
		nodeLimit:       cfg.NodeLimit,
		movetime:        cfg.Movetime,
		captureShortcut: !cfg.DisableCaptureShortcut,
		logger:          cfg.Logger,
		debug:           cfg.Debug,
	}
}

func (e *Engine) Depth() uint8 {
	return e.depth
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

// ChooseMove picks the move for aiSide, which must be the side to move. When any legal move
// captures an enemy piece, the best capture by static evaluation is returned without a deeper
// search. Otherwise a fixed depth alpha-beta search runs. The board is restored before returning.
// A search cut short by the limits returns the best root move searched to completion.
func (e *Engine) ChooseMove(ctx context.Context, b *board.Board, aiSide board.Side) (board.Move, error) {
	e.nodes = 0
	mvs := orderedMoves(b, aiSide)
	if len(mvs) == 0 {
		return board.Move{}, fmt.Errorf("%w: %s", ErrNoLegalMove, aiSide)
	}

	if e.captureShortcut {
		if mv, ok := e.bestCapture(b, aiSide); ok {
			if e.debug {
				e.logger(fmt.Sprintf("capture shortcut: %s", mv.Algebra()))
			}
			return mv, nil
		}
	}

	score, mv := e.search(ctx, b, aiSide)
	if mv.IsNull() {
		// stopped before the first root move completed
		mv = mvs[0]
	}
	if e.debug {
		e.logger(fmt.Sprintf("best move: %s score: %s", mv.Algebra(), e.formatScore(score)))
	}
	return mv, nil
}

// bestCapture plays every legal capture of s, evaluates and undoes it, and returns the one
// scoring best for s. Ties keep generation order.
func (e *Engine) bestCapture(b *board.Board, s board.Side) (board.Move, bool) {
	sign := int32(1)
	if s == board.SideBlack {
		sign = -1
	}
	var best board.Move
	var bestScore int32
	found := false
	for _, mv := range b.GenerateMoves(s) {
		if !mv.IsCapture(b) {
			continue
		}
		if mv.IsPromotion() {
			mv.Promote = board.KindQueen
		}
		unPlay := b.Play(mv)
		score := sign * Evaluate(b)
		unPlay()
		if !found || score > bestScore {
			best, bestScore, found = mv, score, true
		}
	}
	return best, found
}

func (e *Engine) search(ctx context.Context, b *board.Board, turn board.Side) (int32, board.Move) {
	e.nodes = 0
	e.rootDepth = e.depth
	e.tt.ResetStats()
	e.limits.Start(ctx, e.movetime, e.nodeLimit)
	defer e.limits.Stop()

	startTime := time.Now()
	score, mv := e.minimax(b, e.depth, -ScoreInfinite, ScoreInfinite, turn)
	e.elapsedTime = time.Since(startTime)

	hits, misses, writes := e.tt.Stats()
	e.logger(message.NewPrinter(language.English).
		Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s tt:%d/%d/%d stopped:%t",
			e.depth, e.formatScore(score), e.nodes, float64(e.nodes)/((e.elapsedTime + 1).Seconds()), e.elapsedTime,
			hits, misses, writes, e.limits.Stopped()))
	return score, mv
}

// minimax scores the board from White's point of view: White maximizes, Black minimizes.
// Results of completed subtrees are cached with their bound type; once the limits trip, the
// partial result is discarded except at the root, which keeps its best completed move.
func (e *Engine) minimax(b *board.Board, depth uint8, alpha, beta int32, turn board.Side) (int32, board.Move) {
	e.nodes++
	if e.limits.Done(e.nodes) {
		return 0, board.Move{}
	}

	isRoot := depth == e.rootDepth
	key := b.Hash() ^ b.Zobrist().Turn(turn)

	// check from TranspositionTable
	if ttType, ttMove, ttScore, ttDepth, ok := e.tt.Get(key); !isRoot && ok && ttDepth >= depth {
		switch ttType {
		case EntryTypeExact:
			return ttScore, ttMove
		case EntryTypeLowerBound:
			if ttScore >= beta {
				return ttScore, ttMove
			}
		case EntryTypeUpperBound:
			if ttScore <= alpha {
				return ttScore, ttMove
			}
		}
	}

	// check if leaf reached
	if depth == 0 {
		eval := Evaluate(b)
		e.tt.Set(key, EntryTypeExact, board.Move{}, eval, 0)
		return eval, board.Move{}
	}

	mvs := orderedMoves(b, turn)

	// no moves, game has terminated
	if len(mvs) == 0 {
		score := terminalScore(b, turn, depth)
		e.tt.Set(key, EntryTypeExact, board.Move{}, score, depth)
		return score, board.Move{}
	}

	alphaOrig, betaOrig := alpha, beta
	maximizing := turn == board.SideWhite
	bestScore := ScoreInfinite
	if maximizing {
		bestScore = -ScoreInfinite
	}
	var bestMove board.Move
	for _, mv := range mvs {
		unPlay := b.Play(mv)
		score, _ := e.minimax(b, depth-1, alpha, beta, turn.Opposite())
		unPlay()

		if e.limits.Stopped() {
			if isRoot && !bestMove.IsNull() {
				return bestScore, bestMove
			}
			return 0, board.Move{}
		}

		if maximizing {
			if score > bestScore {
				bestScore, bestMove = score, mv
			}
			alpha = max(alpha, score)
		} else {
			if score < bestScore {
				bestScore, bestMove = score, mv
			}
			beta = min(beta, score)
		}
		if beta <= alpha {
			break // cutoff
		}
	}

	ttType := EntryTypeExact
	switch {
	case bestScore <= alphaOrig:
		ttType = EntryTypeUpperBound
	case bestScore >= betaOrig:
		ttType = EntryTypeLowerBound
	}
	e.tt.Set(key, ttType, bestMove, bestScore, depth)

	return bestScore, bestMove
}

// terminalScore scores a side to move without legal moves: mated sides lose by more the
// sooner it happens, stalemate is even.
func terminalScore(b *board.Board, turn board.Side, depth uint8) int32 {
	if !b.IsInCheck(turn) {
		return 0
	}
	score := scoreCheckmate + int32(depth)
	if turn == board.SideWhite {
		return -score
	}
	return score
}

func (e *Engine) formatScore(s int32) string {
	if s == ScoreInfinite {
		return "+inf"
	}
	if s == -ScoreInfinite {
		return "-inf"
	}
	if abs(s) >= scoreCheckmate {
		plies := int32(e.rootDepth) - (abs(s) - scoreCheckmate)
		if s > 0 {
			return fmt.Sprintf("#+%d", (plies+1)/2)
		}
		return fmt.Sprintf("#-%d", (plies+1)/2)
	}
	if s > 0 {
		return fmt.Sprintf("+%.2f", float64(s)/100)
	}
	if s < 0 {
		return fmt.Sprintf("%.2f", float64(s)/100)
	}
	return "0"
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
