package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/game"
	"github.com/daystram/sparring/render"
)

func selfplay(fen string, steps int) error {
	e := newEngine()
	g, err := game.NewGame(
		game.WithFEN(fen),
		game.WithEngine(e),
		game.WithLogger(log.Println),
		game.WithOnEnd(func(s game.State) {
			log.Println("=============== game ended:", s)
		}),
	)
	if err != nil {
		return err
	}
	fmt.Println(render.Terminal(g.Board(), render.WithUnicode(true)))
	fmt.Println(g.FEN())

	p := message.NewPrinter(language.English)
	var totalNodes uint64
	start := time.Now()
	for step := 1; step <= steps && !g.IsOver(); step++ {
		turn := g.Turn()
		mv, err := g.AIMove(context.Background())
		if err != nil {
			return err
		}
		totalNodes += e.Nodes()

		fmt.Printf("\n>>> %s: %s\n", turn, mv.Algebra())
		fmt.Println(render.Terminal(g.Board(), render.WithUnicode(true), render.WithSelected(mv.To)))
		fmt.Println(g.FEN())
	}

	fmt.Println()
	fmt.Println(g.State())
	fmt.Println(dumpHistory(g.Moves()))
	fmt.Println(p.Sprintf("%d half-moves, %d nodes searched in %s", len(g.Moves()), totalNodes, time.Since(start)))
	return nil
}

func dumpHistory(mvs []board.Move) string {
	builder := strings.Builder{}
	for i, mv := range mvs {
		if mv.Piece.Side == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. ", i/2+1))
		} else if i == 0 {
			_, _ = builder.WriteString("1... ")
		}
		_, _ = builder.WriteString(mv.Algebra())
		if i < len(mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}
