package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/sparring/position"
)

var (
	ErrInvalidFEN   = errors.New("invalid fen")
	ErrKingNotFound = errors.New("king not found")
	ErrNotPromotion = errors.New("no pawn to promote")
)

// Board is the 8x8 position: the single owner of every piece on it.
// Little-endian rank-file (LERF) mapping.
type Board struct {
	// grid data
	cells    [TotalCells]Piece
	sides    [2 + 1]Bitmap
	kinds    [6 + 1]Bitmap
	occupied Bitmap

	// meta
	hash    uint64
	zobrist *Zobrist
}

type boardConfig struct {
	fen     string
	empty   bool
	zobrist *Zobrist
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// WithZobrist overrides the key table used for position hashing.
func WithZobrist(z *Zobrist) BoardOption {
	return func(cfg *boardConfig) {
		cfg.zobrist = z
	}
}

// WithEmpty starts from a board with no pieces. Callers populate it with Place.
func WithEmpty() BoardOption {
	return func(cfg *boardConfig) {
		cfg.empty = true
	}
}

// NewBoard returns the board and the side to move.
func NewBoard(opts ...BoardOption) (*Board, Side, error) {
	cfg := &boardConfig{
		fen:     DefaultStartingPositionFEN,
		zobrist: defaultZobrist,
	}
	for _, f := range opts {
		f(cfg)
	}
	b := &Board{zobrist: cfg.zobrist}
	if cfg.empty {
		return b, SideWhite, nil
	}
	turn, err := UnmarshalFEN(cfg.fen, b)
	if err != nil {
		return nil, SideUnknown, err
	}
	return b, turn, nil
}

func (b *Board) place(pos position.Pos, p Piece) {
	b.cells[pos] = p
	b.sides[p.Side].Set(pos)
	b.kinds[p.Kind].Set(pos)
	b.occupied.Set(pos)
	b.hash ^= b.zobrist.Key(pos, p)
}

func (b *Board) remove(pos position.Pos) Piece {
	p := b.cells[pos]
	if p.IsEmpty() {
		return p
	}
	b.cells[pos] = Piece{}
	b.sides[p.Side].Unset(pos)
	b.kinds[p.Kind].Unset(pos)
	b.occupied.Unset(pos)
	b.hash ^= b.zobrist.Key(pos, p)
	return p
}

// PieceAt returns the piece on pos, false if the square is empty or off the board.
func (b *Board) PieceAt(pos position.Pos) (Piece, bool) {
	if !pos.IsValid() || b.cells[pos].IsEmpty() {
		return Piece{}, false
	}
	return b.cells[pos], true
}

// Place puts p on pos, replacing the previous occupant, which is returned.
func (b *Board) Place(pos position.Pos, p Piece) Piece {
	prev := b.remove(pos)
	if !p.IsEmpty() {
		b.place(pos, p)
	}
	return prev
}

// Remove clears pos and returns its previous occupant.
func (b *Board) Remove(pos position.Pos) Piece {
	return b.remove(pos)
}

// ApplyMove moves the piece on from to to and increments its move counter.
// A piece standing on to is overwritten and returned; the caller keeps it for UndoMove.
func (b *Board) ApplyMove(from, to position.Pos) Piece {
	p := b.remove(from)
	if p.IsEmpty() {
		return Piece{}
	}
	captured := b.remove(to)
	p.Moves++
	b.place(to, p)
	return captured
}

// UndoMove is the exact inverse of ApplyMove.
func (b *Board) UndoMove(from, to position.Pos, captured Piece) {
	p := b.remove(to)
	if p.IsEmpty() {
		return
	}
	p.Moves--
	b.place(from, p)
	if !captured.IsEmpty() {
		b.place(to, captured)
	}
}

// Hash returns the incrementally maintained zobrist hash of the occupancy.
func (b *Board) Hash() uint64 {
	return b.hash
}

// ComputeHash recomputes the zobrist hash from scratch.
func (b *Board) ComputeHash() uint64 {
	return b.zobrist.Hash(b)
}

func (b *Board) Zobrist() *Zobrist {
	return b.zobrist
}

func (b *Board) GetBitmap(s Side, k Kind) Bitmap {
	return b.sides[s] & b.kinds[k]
}

func (b *Board) SideBitmap(s Side) Bitmap {
	return b.sides[s]
}

func (b *Board) Occupied() Bitmap {
	return b.occupied
}

// King locates the king of s. A missing king means the board was corrupted and panics.
func (b *Board) King(s Side) position.Pos {
	bm := b.GetBitmap(s, KindKing)
	if bm == 0 {
		panic(fmt.Errorf("%w: %s", ErrKingNotFound, s))
	}
	return bm.LS1B()
}

// Equal compares placement and move counters.
func (b *Board) Equal(other *Board) bool {
	return other != nil && b.cells == other.cells
}

func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := Height - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			p := b.cells[position.NewPos(x, y)]
			sym := p.Kind.SymbolFEN(p.Side)
			if p.IsEmpty() {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}
