package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/engine"
	"github.com/daystram/sparring/position"
)

var (
	ErrGameOver           = errors.New("game is over")
	ErrNoPiece            = errors.New("no piece")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("illegal move")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion")
)

// repetitionLimit is the number of recorded occurrences of a position that draws the game.
const repetitionLimit = 3

// Game drives one game on a board it owns: turn order, move history, the repetition table,
// the promotion hand-off and the terminal state.
type Game struct {
	board *board.Board
	turn  board.Side

	halfMoveClock uint16
	fullMoveClock uint16

	history     []uint64
	repetitions map[uint64]int
	moves       []board.Move

	state      State
	promotion  position.Pos
	hasPending bool
	ended      bool

	engine *engine.Engine
	ai     board.Side
	logger func(...any)
	onEnd  func(State)
}

type gameConfig struct {
	fen    string
	engine *engine.Engine
	ai     board.Side
	logger func(...any)
	onEnd  func(State)
}

type GameOption func(*gameConfig)

func WithFEN(fen string) GameOption {
	return func(cfg *gameConfig) {
		cfg.fen = fen
	}
}

// WithEngine sets the engine used by AIMove. A default engine is created otherwise.
func WithEngine(e *engine.Engine) GameOption {
	return func(cfg *gameConfig) {
		cfg.engine = e
	}
}

// WithAI marks the side played by the engine.
func WithAI(s board.Side) GameOption {
	return func(cfg *gameConfig) {
		cfg.ai = s
	}
}

func WithLogger(logger func(...any)) GameOption {
	return func(cfg *gameConfig) {
		cfg.logger = logger
	}
}

// WithOnEnd registers a callback invoked once, when the game reaches a terminal state.
func WithOnEnd(f func(State)) GameOption {
	return func(cfg *gameConfig) {
		cfg.onEnd = f
	}
}

func NewGame(opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{
		fen:    board.DefaultStartingPositionFEN,
		logger: engine.NopLogger,
	}
	for _, f := range opts {
		f(cfg)
	}
	if cfg.engine == nil {
		cfg.engine = engine.NewEngine(&engine.EngineConfig{Logger: cfg.logger})
	}

	b, turn, err := board.NewBoard(board.WithFEN(cfg.fen))
	if err != nil {
		return nil, err
	}
	half, full, err := board.ParseFENClocks(cfg.fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		board:         b,
		turn:          turn,
		halfMoveClock: half,
		fullMoveClock: full,
		repetitions:   make(map[uint64]int),
		engine:        cfg.engine,
		ai:            cfg.ai,
		logger:        cfg.logger,
		onEnd:         cfg.onEnd,
	}

	// the loaded position itself is not recorded for repetition
	switch {
	case b.IsCheckmate(turn):
		g.end(stateCheckmate(turn))
	case b.IsStalemate(turn):
		g.end(StateStalemate)
	case b.IsInCheck(turn):
		g.state = stateCheck(turn)
	default:
		g.state = StateRunning
	}
	return g, nil
}

// Play commits the move of the piece on from to to for the side to move. A pawn reaching
// its last row leaves the turn open until Promote is called.
func (g *Game) Play(from, to position.Pos) error {
	if g.ended {
		return ErrGameOver
	}
	if g.hasPending {
		return fmt.Errorf("%w: %s", ErrPromotionPending, g.promotion)
	}
	p, ok := g.board.PieceAt(from)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Side != g.turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.turn)
	}
	if !slices.Contains(g.board.LegalMoves(from), to) {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	mv := board.Move{Piece: p, From: from, To: to}
	occupied := g.board.Occupied().BitCount()
	g.board.Play(mv)
	if p.Kind == board.KindPawn || g.board.Occupied().BitCount() != occupied {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}
	g.moves = append(g.moves, mv)

	if mv.IsPromotion() {
		g.promotion, g.hasPending = to, true
		g.logger(fmt.Sprintf("%s: %s, awaiting promotion", g.turn, mv.Algebra()))
		return nil
	}
	g.logger(fmt.Sprintf("%s: %s", g.turn, mv.Algebra()))
	g.completeHalfMove()
	return nil
}

// Promote replaces the pawn awaiting promotion on pos and completes the half-move.
func (g *Game) Promote(pos position.Pos, k board.Kind) error {
	if g.ended {
		return ErrGameOver
	}
	if !g.hasPending {
		return ErrNoPromotionPending
	}
	if pos != g.promotion || !k.IsPromoteCandidate() {
		return fmt.Errorf("%w: %s to %s", ErrInvalidPromotion, pos, k)
	}
	if err := g.board.Promote(pos, k); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPromotion, err)
	}
	g.moves[len(g.moves)-1].Promote = k
	g.hasPending = false
	g.logger(fmt.Sprintf("%s: promoted to %s", g.turn, k))
	g.completeHalfMove()
	return nil
}

// AIMove lets the engine choose and commit the move of the side to move. The engine
// always promotes to a queen.
func (g *Game) AIMove(ctx context.Context) (board.Move, error) {
	if g.ended {
		return board.Move{}, ErrGameOver
	}
	if g.hasPending {
		return board.Move{}, fmt.Errorf("%w: %s", ErrPromotionPending, g.promotion)
	}
	mv, err := g.engine.ChooseMove(ctx, g.board, g.turn)
	if err != nil {
		return board.Move{}, err
	}
	if err := g.Play(mv.From, mv.To); err != nil {
		return board.Move{}, err
	}
	if g.hasPending {
		mv.Promote = board.KindQueen
		if err := g.Promote(mv.To, mv.Promote); err != nil {
			return board.Move{}, err
		}
	}
	return mv, nil
}

// completeHalfMove runs the end-of-move checks in order: checkmate of the opponent,
// turn alternation and hash recording, repetition, stalemate, check.
func (g *Game) completeHalfMove() {
	mover := g.turn
	g.turn = mover.Opposite()
	if mover == board.SideBlack {
		g.fullMoveClock++
	}

	if g.board.IsCheckmate(g.turn) {
		g.end(stateCheckmate(g.turn))
		return
	}

	hash := g.board.Hash()
	g.history = append(g.history, hash)
	g.repetitions[hash]++

	switch {
	case g.repetitions[hash] >= repetitionLimit:
		g.end(StateDrawRepetition)
	case g.board.IsStalemate(g.turn):
		g.end(StateStalemate)
	case g.board.IsInCheck(g.turn):
		g.state = stateCheck(g.turn)
	default:
		g.state = StateRunning
	}
}

func (g *Game) end(s State) {
	g.state = s
	if g.ended {
		return
	}
	g.ended = true
	g.logger(fmt.Sprintf("game ended: %s", s))
	if g.onEnd != nil {
		g.onEnd(s)
	}
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Turn() board.Side {
	return g.turn
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) IsOver() bool {
	return g.ended
}

// AI returns the side played by the engine, SideUnknown if none.
func (g *Game) AI() board.Side {
	return g.ai
}

// IsAITurn reports whether the engine is due to move.
func (g *Game) IsAITurn() bool {
	return !g.ended && !g.hasPending && g.ai != board.SideUnknown && g.turn == g.ai
}

// PendingPromotion returns the square of the pawn awaiting promotion.
func (g *Game) PendingPromotion() (position.Pos, bool) {
	return g.promotion, g.hasPending
}

func (g *Game) PieceAt(pos position.Pos) (board.Piece, bool) {
	return g.board.PieceAt(pos)
}

// LegalMoves returns the destinations of the piece on pos if it may move now.
func (g *Game) LegalMoves(pos position.Pos) []position.Pos {
	p, ok := g.board.PieceAt(pos)
	if !ok || p.Side != g.turn || g.ended || g.hasPending {
		return nil
	}
	return g.board.LegalMoves(pos)
}

func (g *Game) IsInCheck(s board.Side) bool {
	return g.board.IsInCheck(s)
}

// IsCheckmate reports whether s is checkmated.
func (g *Game) IsCheckmate(s board.Side) bool {
	return g.board.IsCheckmate(s)
}

func (g *Game) IsStalemate(s board.Side) bool {
	return g.board.IsStalemate(s)
}

// IsDrawByRepetition reports whether the current position has been recorded three times.
func (g *Game) IsDrawByRepetition() bool {
	return g.repetitions[g.board.Hash()] >= repetitionLimit
}

// History returns the position hash recorded after every completed half-move.
func (g *Game) History() []uint64 {
	return slices.Clone(g.history)
}

func (g *Game) Moves() []board.Move {
	return slices.Clone(g.moves)
}

func (g *Game) FEN() string {
	return g.board.FEN(g.turn, g.halfMoveClock, g.fullMoveClock)
}
