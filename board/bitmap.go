package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/sparring/position"
)

// Bitmap is a set of squares, bit i standing for position.Pos(i) (little-endian rank-file).
type Bitmap uint64

func (bm Bitmap) Has(pos position.Pos) bool {
	return pos.IsValid() && bm&maskCell[pos] != 0
}

func (bm *Bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *Bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

func (bm Bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

func (bm Bitmap) BitCount() uint8 {
	return uint8(bits.OnesCount64(uint64(bm)))
}

// Positions lists the squares of the set in ascending order.
func (bm Bitmap) Positions() []position.Pos {
	out := make([]position.Pos, 0, bm.BitCount())
	for bm != 0 {
		pos := bm.LS1B()
		out = append(out, pos)
		bm &= bm - 1
	}
	return out
}

func (bm Bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := Height; y > 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < Width; x++ {
			if bm&maskCell[position.NewPos(x, y-1)] != 0 {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
