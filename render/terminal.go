package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/position"
)

var (
	colorLight     = []color.Attribute{color.BgHiWhite, color.FgBlack}
	colorDark      = []color.Attribute{color.BgHiBlack, color.FgHiWhite}
	colorSelected  = []color.Attribute{color.BgYellow, color.FgBlack}
	colorHighlight = []color.Attribute{color.BgGreen, color.FgBlack}
)

// Terminal draws the board as a grid of three character cells with rank and file labels.
// Highlighted empty squares show a dot.
func Terminal(b *board.Board, opts ...RenderOption) string {
	cfg := newConfig(opts)
	paint := func(attrs []color.Attribute) *color.Color {
		c := color.New(attrs...)
		if cfg.color != nil {
			if *cfg.color {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
		return c
	}
	light, dark := paint(colorLight), paint(colorDark)
	selected, highlight := paint(colorSelected), paint(colorHighlight)

	builder := strings.Builder{}
	for _, y := range cfg.rows() {
		_, _ = builder.WriteString(y.NotationComponentY() + " ")
		for _, x := range cfg.cols() {
			pos := position.NewPos(x, y)
			cell := " . "
			if p, ok := b.PieceAt(pos); ok {
				cell = " " + cfg.symbol(p) + " "
			} else if !cfg.highlight.Has(pos) {
				cell = "   "
			}

			c := dark
			switch {
			case cfg.hasSelected && pos == cfg.selected:
				c = selected
			case cfg.highlight.Has(pos):
				c = highlight
			case isLight(pos):
				c = light
			}
			_, _ = builder.WriteString(c.Sprint(cell))
		}
		_, _ = builder.WriteRune('\n')
	}
	_, _ = builder.WriteString(" ")
	for _, x := range cfg.cols() {
		_, _ = builder.WriteString("  " + x.NotationComponentX())
	}
	_, _ = builder.WriteRune('\n')
	return builder.String()
}
