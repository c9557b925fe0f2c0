package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/render"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", turn)
	fmt.Println(b.Dump())
	fmt.Println(render.Terminal(b, render.WithUnicode(true)))
	fmt.Println("check:", b.IsInCheck(turn), "checkmate:", b.IsCheckmate(turn), "stalemate:", b.IsStalemate(turn))
	dumpMoves(b, turn)

	if draw {
		for _, mv := range b.GenerateMoves(turn) {
			if mv.IsPromotion() {
				mv.Promote = board.KindQueen
			}
			unPlay := b.Play(mv)
			fmt.Println(mv)
			fmt.Println(render.Terminal(b, render.WithUnicode(true), render.WithSelected(mv.To)))
			fmt.Println(b.FEN(turn.Opposite(), 0, 1))
			unPlay()
		}
	}
	return nil
}

func dumpMoves(b *board.Board, turn board.Side) {
	mvs := b.GenerateMoves(turn)
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s %s => %s (cap=%v) (adj=%v) (cas=%s) (pro=%v)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), turn, mv.Piece.Kind, mv.From, mv.To,
			mv.IsCapture(b), mv.IsAdjacentCapture(b), mv.Castle(), mv.IsPromotion())
	}
}
