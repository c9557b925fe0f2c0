package main

import (
	"bufio"
	"log"
	"os"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/position"
	"github.com/daystram/sparring/render"
)

func writeSVG(path, fen, selected string) error {
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	opts := []render.RenderOption{render.WithFlip(turn == board.SideBlack)}
	if selected != "" {
		pos, err := position.NewPosFromNotation(selected)
		if err != nil {
			return err
		}
		opts = append(opts, render.WithSelected(pos), render.WithHighlight(b.LegalMoves(pos)...))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	render.SVG(w, b, opts...)
	if err := w.Flush(); err != nil {
		return err
	}
	log.Println("written:", path)
	return nil
}
