package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/game"
	"github.com/daystram/sparring/position"
	"github.com/daystram/sparring/render"
)

var errInvalidMove = errors.New("invalid move notation")

// parseMove reads coordinate notation such as e2e4 or a7a8q.
func parseMove(s string) (position.Pos, position.Pos, board.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return 0, 0, board.KindUnknown, fmt.Errorf("%w: %q", errInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[:2])
	if err != nil {
		return 0, 0, board.KindUnknown, fmt.Errorf("%w: %v", errInvalidMove, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return 0, 0, board.KindUnknown, fmt.Errorf("%w: %v", errInvalidMove, err)
	}
	promote := board.KindUnknown
	if len(s) == 5 {
		for _, k := range board.PawnPromoteCandidates {
			if k.SymbolFEN(board.SideBlack) == s[4:] {
				promote = k
			}
		}
		if promote == board.KindUnknown {
			return 0, 0, board.KindUnknown, fmt.Errorf("%w: unknown promotion %q", errInvalidMove, s[4:])
		}
	}
	return from, to, promote, nil
}

func parseSide(s string) (board.Side, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return board.SideWhite, nil
	case "black", "b":
		return board.SideBlack, nil
	default:
		return board.SideUnknown, fmt.Errorf("unknown side %q", s)
	}
}

// play runs an interactive game on in/out. Commands: a move in coordinate notation,
// "moves <square>" to mark legal moves, "fen", "quit".
func play(fen, side string, in io.Reader, out io.Writer) error {
	human, err := parseSide(side)
	if err != nil {
		return err
	}
	g, err := game.NewGame(
		game.WithFEN(fen),
		game.WithEngine(newEngine()),
		game.WithAI(human.Opposite()),
		game.WithLogger(log.Println),
		game.WithOnEnd(func(s game.State) {
			fmt.Fprintln(out, "game ended:", s)
		}),
	)
	if err != nil {
		return err
	}
	draw := func(opts ...render.RenderOption) {
		opts = append(opts, render.WithUnicode(true), render.WithFlip(human == board.SideBlack))
		fmt.Fprintln(out, render.Terminal(g.Board(), opts...))
	}

	scanner := bufio.NewScanner(in)
	for !g.IsOver() {
		if g.IsAITurn() {
			mv, err := g.AIMove(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s plays %s\n", mv.Piece.Side, mv.Algebra())
			continue
		}

		draw()
		fmt.Fprintf(out, "%s to move> ", g.Turn())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch fields := strings.Fields(line); {
		case line == "":
			continue
		case line == "quit":
			return nil
		case line == "fen":
			fmt.Fprintln(out, g.FEN())
			continue
		case fields[0] == "moves" && len(fields) == 2:
			pos, err := position.NewPosFromNotation(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			draw(render.WithSelected(pos), render.WithHighlight(g.LegalMoves(pos)...))
			continue
		}

		from, to, promote, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := g.Play(from, to); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if _, pending := g.PendingPromotion(); pending {
			if promote == board.KindUnknown {
				promote = board.KindQueen
			}
			if err := g.Promote(to, promote); err != nil {
				return err
			}
		}
	}
	draw()
	fmt.Fprintln(out, dumpHistory(g.Moves()))
	return nil
}
