package board

import (
	"fmt"

	"github.com/daystram/sparring/position"
)

// Move is a piece travelling from one square to another. Castling, the adjacent pawn
// capture and promotion are derived from the squares and the board, except the
// promotion kind which the mover chooses.
type Move struct {
	Piece    Piece
	From, To position.Pos
	Promote  Kind
}

func (m Move) IsNull() bool {
	return m.Piece.IsEmpty()
}

func (m Move) Equals(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promote == other.Promote
}

// Castle returns the castling direction when the move is a two-square king hop.
func (m Move) Castle() CastleDirection {
	if m.Piece.Kind != KindKing {
		return CastleDirectionUnknown
	}
	switch m.To.X() - m.From.X() {
	case 2:
		return CastleDirectionRight
	case -2:
		return CastleDirectionLeft
	default:
		return CastleDirectionUnknown
	}
}

// IsCapture reports whether the move lands on an enemy piece. Must be asked before playing it.
func (m Move) IsCapture(b *Board) bool {
	return b.isEnemy(m.To, m.Piece.Side)
}

// IsAdjacentCapture reports whether the move is a diagonal pawn step onto an empty square,
// removing the pawn beside the mover.
func (m Move) IsAdjacentCapture(b *Board) bool {
	return m.Piece.Kind == KindPawn && m.From.X() != m.To.X() && b.isEmpty(m.To)
}

// IsPromotion reports whether a pawn reaches its last row.
func (m Move) IsPromotion() bool {
	return m.Piece.Kind == KindPawn && m.To.Y() == m.Piece.Side.LastRow()
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.Promote.SymbolAlgebra(SideBlack)
}

func (m Move) Algebra() string {
	if d := m.Castle(); d != CastleDirectionUnknown {
		return d.String()
	}
	return fmt.Sprintf("%s%s-%s%s",
		m.Piece.Kind.SymbolAlgebra(SideWhite), m.From.Notation(), m.To.Notation(), m.Promote.SymbolAlgebra(SideWhite))
}

// Play applies the move with all its side effects and returns the function restoring
// the board exactly as it was.
func (b *Board) Play(mv Move) (unPlay func()) {
	adjacent := mv.IsAdjacentCapture(b)
	captured := b.ApplyMove(mv.From, mv.To)

	var (
		removedPos position.Pos
		removed    Piece
		rookGeo    castleGeometry
		castled    bool
		promoted   bool
	)
	if adjacent {
		removedPos = position.NewPos(mv.To.X(), mv.From.Y())
		if b.cells[removedPos].Is(mv.Piece.Side.Opposite(), KindPawn) {
			removed = b.remove(removedPos)
		}
	}
	if d := mv.Castle(); d != CastleDirectionUnknown {
		if geo, ok := castleGeometryFor(mv.From, d); ok && b.cells[geo.rookFrom].Is(mv.Piece.Side, KindRook) {
			rookGeo, castled = geo, true
			b.ApplyMove(geo.rookFrom, geo.rookTo)
		}
	}
	if mv.Promote != KindUnknown && mv.IsPromotion() {
		b.promote(mv.To, mv.Promote)
		promoted = true
	}

	return func() {
		if promoted {
			b.promote(mv.To, KindPawn)
		}
		if castled {
			b.UndoMove(rookGeo.rookFrom, rookGeo.rookTo, Piece{})
		}
		b.UndoMove(mv.From, mv.To, captured)
		if !removed.IsEmpty() {
			b.place(removedPos, removed)
		}
	}
}

// Promote replaces the pawn standing on its last row at pos with a piece of kind k.
func (b *Board) Promote(pos position.Pos, k Kind) error {
	p, ok := b.PieceAt(pos)
	if !ok || p.Kind != KindPawn || pos.Y() != p.Side.LastRow() {
		return fmt.Errorf("%w: %s", ErrNotPromotion, pos)
	}
	if !k.IsPromoteCandidate() {
		return fmt.Errorf("%w: cannot promote to %s", ErrNotPromotion, k)
	}
	b.promote(pos, k)
	return nil
}

func (b *Board) promote(pos position.Pos, k Kind) {
	p := b.remove(pos)
	p.Kind = k
	b.place(pos, p)
}
