package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/position"
)

const (
	fillLight     = "fill:#e8edf9"
	fillDark      = "fill:#b7c0d8"
	fillSelected  = "fill:#f6f669"
	fillHighlight = "fill:#646f40;fill-opacity:0.5"
)

// SVG writes the board as an SVG image: squares, pieces as glyphs, and a dot on every
// highlighted square.
func SVG(w io.Writer, b *board.Board, opts ...RenderOption) {
	cfg := newConfig(opts)
	size := cfg.squareSize

	canvas := svg.New(w)
	canvas.Start(size*int(board.Width), size*int(board.Height))
	for row, y := range cfg.rows() {
		for col, x := range cfg.cols() {
			pos := position.NewPos(x, y)
			fill := fillDark
			switch {
			case cfg.hasSelected && pos == cfg.selected:
				fill = fillSelected
			case isLight(pos):
				fill = fillLight
			}
			canvas.Rect(col*size, row*size, size, size, fill)
		}
	}

	textStyle := fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-size:%dpx;font-family:sans-serif", size*3/4)
	for row, y := range cfg.rows() {
		for col, x := range cfg.cols() {
			pos := position.NewPos(x, y)
			cx, cy := col*size+size/2, row*size+size/2
			if p, ok := b.PieceAt(pos); ok {
				canvas.Text(cx, cy, p.Kind.SymbolUnicode(p.Side), textStyle)
			}
			if cfg.highlight.Has(pos) {
				canvas.Circle(cx, cy, size/6, fillHighlight)
			}
		}
	}
	canvas.End()
}
