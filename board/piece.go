package board

import "fmt"

// Kind is the closed set of chess piece kinds.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPawn
	KindBishop
	KindKnight
	KindRook
	KindQueen
	KindKing
)

// Kinds lists every piece kind in declaration order.
var Kinds = []Kind{KindPawn, KindBishop, KindKnight, KindRook, KindQueen, KindKing}

// PawnPromoteCandidates represents the candidates for pawn promotion.
var PawnPromoteCandidates = []Kind{KindQueen, KindRook, KindBishop, KindKnight}

func (k Kind) String() string {
	return k.Name()
}

func (k Kind) Name() string {
	switch k {
	case KindPawn:
		return "Pawn"
	case KindBishop:
		return "Bishop"
	case KindKnight:
		return "Knight"
	case KindRook:
		return "Rook"
	case KindQueen:
		return "Queen"
	case KindKing:
		return "King"
	default:
		return ""
	}
}

// IsPromoteCandidate reports whether a pawn may be promoted to k.
func (k Kind) IsPromoteCandidate() bool {
	for _, c := range PawnPromoteCandidates {
		if c == k {
			return true
		}
	}
	return false
}

func (k Kind) SymbolAlgebra(s Side) string {
	if k == KindPawn {
		return ""
	}
	return k.SymbolFEN(s)
}

func (k Kind) SymbolFEN(s Side) string {
	var sym rune
	switch k {
	case KindPawn:
		sym = 'P'
	case KindBishop:
		sym = 'B'
	case KindKnight:
		sym = 'N'
	case KindRook:
		sym = 'R'
	case KindQueen:
		sym = 'Q'
	case KindKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (k Kind) SymbolUnicode(s Side) string {
	switch s {
	case SideWhite:
		switch k {
		case KindPawn:
			return "♙"
		case KindBishop:
			return "♗"
		case KindKnight:
			return "♘"
		case KindRook:
			return "♖"
		case KindQueen:
			return "♕"
		case KindKing:
			return "♔"
		}
	case SideBlack:
		switch k {
		case KindPawn:
			return "♟"
		case KindBishop:
			return "♝"
		case KindKnight:
			return "♞"
		case KindRook:
			return "♜"
		case KindQueen:
			return "♛"
		case KindKing:
			return "♚"
		}
	}
	return ""
}

// Piece is an occupant of a square. The zero value is an empty square.
// Moves counts how many times the piece has moved; it gates the pawn double step,
// castling and the adjacent pawn capture.
type Piece struct {
	Side  Side
	Kind  Kind
	Moves uint16
}

// NewPiece returns an unmoved piece.
func NewPiece(s Side, k Kind) Piece {
	return Piece{Side: s, Kind: k}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == KindUnknown
}

func (p Piece) Is(s Side, k Kind) bool {
	return p.Side == s && p.Kind == k
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%s %s", p.Side, p.Kind)
}
