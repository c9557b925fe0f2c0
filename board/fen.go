package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/sparring/position"
)

// UnmarshalFEN populates an empty board and returns the side to move. FEN carries no move
// counters, so they are derived: unmoved pawns on their start row, kings and rooks with a
// matching castling right; a pawn the en passant field points behind has moved once.
func UnmarshalFEN(fen string, b *Board) (Side, error) {
	if b == nil {
		return SideUnknown, fmt.Errorf("invalid board")
	}
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return SideUnknown, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return SideUnknown, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		ptrX, ptrY := -1, Height-y-1
		for x := position.Pos(0); x < Width; x++ {
			ptrX++
			if ptrX >= len(rows[ptrY]) {
				return SideUnknown, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
			}
			var s Side
			var k Kind
			switch cell := rune(rows[ptrY][ptrX]); cell {
			case 'P':
				s, k = SideWhite, KindPawn
			case 'B':
				s, k = SideWhite, KindBishop
			case 'N':
				s, k = SideWhite, KindKnight
			case 'R':
				s, k = SideWhite, KindRook
			case 'Q':
				s, k = SideWhite, KindQueen
			case 'K':
				s, k = SideWhite, KindKing
			case 'p':
				s, k = SideBlack, KindPawn
			case 'b':
				s, k = SideBlack, KindBishop
			case 'n':
				s, k = SideBlack, KindKnight
			case 'r':
				s, k = SideBlack, KindRook
			case 'q':
				s, k = SideBlack, KindQueen
			case 'k':
				s, k = SideBlack, KindKing
			default:
				if cell != '0' && unicode.IsDigit(cell) {
					skip := position.Pos(cell - '0')
					if skip != 0 && x+skip-1 < Width {
						x += skip - 1
						continue
					}
					return SideUnknown, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				return SideUnknown, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			b.place(position.NewPos(x, y), Piece{Side: s, Kind: k, Moves: 1})
		}
		if ptrX != len(rows[ptrY])-1 {
			return SideUnknown, fmt.Errorf("%w: extra cells", ErrInvalidFEN)
		}
	}
	if b.GetBitmap(SideWhite, KindKing).BitCount() != 1 || b.GetBitmap(SideBlack, KindKing).BitCount() != 1 {
		return SideUnknown, fmt.Errorf("%w: king missing", ErrInvalidFEN)
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return SideUnknown, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 {
		return SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		var s Side
		var d CastleDirection
		switch e {
		case 'K':
			s, d = SideWhite, CastleDirectionRight
		case 'Q':
			s, d = SideWhite, CastleDirectionLeft
		case 'k':
			s, d = SideBlack, CastleDirectionRight
		case 'q':
			s, d = SideBlack, CastleDirectionLeft
		default:
			if i == 0 && e == '-' && len(segments[2]) == 1 {
				break crLoop
			}
			return SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		king := b.King(s)
		geo, ok := castleGeometryFor(king, d)
		if !ok || king.Y() != s.HomeRow() || !b.cells[geo.rookFrom].Is(s, KindRook) {
			return SideUnknown, fmt.Errorf("%w: castling rights without king and rook", ErrInvalidFEN)
		}
		b.setMoves(king, 0)
		b.setMoves(geo.rookFrom, 0)
	}

	var enPassant Bitmap
	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return SideUnknown, fmt.Errorf("%w: %v", fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN), err)
		}
		if pos.Y() != position.Rank3 && pos.Y() != position.Rank6 {
			return SideUnknown, fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		enPassant.Set(pos)
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, pos := range b.GetBitmap(s, KindPawn).Positions() {
			switch {
			case pos.Y() == s.PawnRow():
				b.setMoves(pos, 0)
			case enPassant.Has(pos - Width*s.Forward()):
				b.setMoves(pos, 1)
			default:
				b.setMoves(pos, 2)
			}
		}
	}
	for _, k := range []Kind{KindBishop, KindKnight, KindQueen} {
		for _, pos := range (b.kinds[k]).Positions() {
			b.setMoves(pos, 0)
		}
	}

	if _, err := strconv.ParseUint(segments[4], 10, 16); err != nil {
		return SideUnknown, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	if _, err := strconv.ParseUint(segments[5], 10, 16); err != nil {
		return SideUnknown, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}

	return turn, nil
}

// ParseFENClocks returns the half move and full move clocks of a FEN string.
func ParseFENClocks(fen string) (uint16, uint16, error) {
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return 0, 0, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}
	half, err := strconv.ParseUint(segments[4], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	full, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	return uint16(half), uint16(full), nil
}

func (b *Board) setMoves(pos position.Pos, moves uint16) {
	b.cells[pos].Moves = moves
}

// MarshalFEN writes the board as FEN. Castling rights are derived from the move counters of
// kings and rooks; the en passant field is always empty.
func MarshalFEN(b *Board, turn Side, halfMoveClock, fullMoveClock uint16) string {
	builder := strings.Builder{}
	var skip uint8
	for y := Height - 1; y >= 0; y-- {
		for x := position.Pos(0); x < Width; x++ {
			for skip = 0; x < Width && b.isEmpty(position.NewPos(x, y)); x++ {
				skip++
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
			}
			if x < Width {
				p := b.cells[position.NewPos(x, y)]
				_, _ = builder.WriteString(p.Kind.SymbolFEN(p.Side))
			}
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	var rights string
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, d := range []CastleDirection{CastleDirectionRight, CastleDirectionLeft} {
			if b.canEverCastle(s, d) {
				sym := "K"
				if d == CastleDirectionLeft {
					sym = "Q"
				}
				if s == SideBlack {
					sym = strings.ToLower(sym)
				}
				rights += sym
			}
		}
	}
	if rights == "" {
		rights = "-"
	}
	_, _ = builder.WriteString(rights)
	_, _ = builder.WriteString(" -")

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", halfMoveClock, fullMoveClock))

	return builder.String()
}

func (b *Board) FEN(turn Side, halfMoveClock, fullMoveClock uint16) string {
	return MarshalFEN(b, turn, halfMoveClock, fullMoveClock)
}

// canEverCastle reports whether the unmoved king and rook of s towards d are in place.
func (b *Board) canEverCastle(s Side, d CastleDirection) bool {
	bm := b.GetBitmap(s, KindKing)
	if bm == 0 {
		return false
	}
	king := bm.LS1B()
	if b.cells[king].Moves != 0 || king.Y() != s.HomeRow() {
		return false
	}
	geo, ok := castleGeometryFor(king, d)
	if !ok {
		return false
	}
	rook := b.cells[geo.rookFrom]
	return rook.Is(s, KindRook) && rook.Moves == 0
}
