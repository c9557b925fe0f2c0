// Package render draws boards for people: a colored terminal grid and an SVG image, both able
// to mark a selected piece and its legal destinations.
package render

import (
	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/position"
)

const DefaultSquareSize = 60

type renderConfig struct {
	selected    position.Pos
	hasSelected bool
	highlight   board.Bitmap
	flip        bool
	unicode     bool
	color       *bool
	squareSize  int
}

type RenderOption func(*renderConfig)

// WithSelected marks pos as the selected square.
func WithSelected(pos position.Pos) RenderOption {
	return func(cfg *renderConfig) {
		cfg.selected, cfg.hasSelected = pos, true
	}
}

// WithHighlight marks destination squares, typically the legal moves of the selected piece.
func WithHighlight(ps ...position.Pos) RenderOption {
	return func(cfg *renderConfig) {
		for _, pos := range ps {
			cfg.highlight.Set(pos)
		}
	}
}

// WithFlip draws the board from Black's side.
func WithFlip(flip bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.flip = flip
	}
}

// WithUnicode draws pieces as chess glyphs instead of FEN letters.
func WithUnicode(unicode bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.unicode = unicode
	}
}

// WithColor forces terminal colors on or off. By default they follow the output terminal.
func WithColor(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.color = &enabled
	}
}

func WithSquareSize(size int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.squareSize = size
	}
}

func newConfig(opts []RenderOption) *renderConfig {
	cfg := &renderConfig{squareSize: DefaultSquareSize}
	for _, f := range opts {
		f(cfg)
	}
	if cfg.squareSize <= 0 {
		cfg.squareSize = DefaultSquareSize
	}
	return cfg
}

// rows returns board rows top to bottom as drawn.
func (cfg *renderConfig) rows() []position.Pos {
	rows := make([]position.Pos, 0, board.Height)
	for i := position.Pos(0); i < board.Height; i++ {
		if cfg.flip {
			rows = append(rows, i)
		} else {
			rows = append(rows, board.Height-1-i)
		}
	}
	return rows
}

// cols returns board columns left to right as drawn.
func (cfg *renderConfig) cols() []position.Pos {
	cols := make([]position.Pos, 0, board.Width)
	for i := position.Pos(0); i < board.Width; i++ {
		if cfg.flip {
			cols = append(cols, board.Width-1-i)
		} else {
			cols = append(cols, i)
		}
	}
	return cols
}

func (cfg *renderConfig) symbol(p board.Piece) string {
	if cfg.unicode {
		return p.Kind.SymbolUnicode(p.Side)
	}
	return p.Kind.SymbolFEN(p.Side)
}

func isLight(pos position.Pos) bool {
	return (pos.X()+pos.Y())%2 == 1
}
