package bench

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/sparring/board"
)

// Result tallies the leaves of a perft run. Leaf counters classify the moves made at depth 1.
type Result struct {
	Nodes      uint64
	Captures   uint64
	Adjacent   uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Captures += o.Captures
	r.Adjacent += o.Adjacent
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
}

// Perft counts the leaves of the legal move tree of fen down to depth, streaming per root
// move counts when verbose and a summary line to out.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	b, turn, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return err
	}

	var divide func(board.Move, uint64)
	if verbose {
		divide = func(mv board.Move, nodes uint64) {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), nodes)
		}
	}

	start := time.Now()
	res := Run(b, turn, depth, parallel, divide)
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d adj=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, res.Nodes, int(float64(res.Nodes)/(elapsed+1).Seconds()),
			res.Captures, res.Adjacent, res.Castles, res.Promotions, res.Checks, elapsed.Seconds())

	return nil
}

// Run walks the move tree of turn on b. In parallel mode every root move is searched on its own
// clone of the board. divide, if set, receives the leaf count of each root move in generation order.
func Run(b *board.Board, turn board.Side, depth int, parallel bool, divide func(board.Move, uint64)) Result {
	var res Result
	if depth == 0 {
		res.Nodes = 1
		return res
	}

	mvs := expandPromotions(b.GenerateMoves(turn))
	children := make([]Result, len(mvs))
	var wg sync.WaitGroup
	for i, mv := range mvs {
		if !parallel {
			children[i] = perftRoot(b, turn, mv, depth)
			continue
		}
		wg.Add(1)
		go func(i int, mv board.Move) {
			defer wg.Done()
			children[i] = perftRoot(b.Clone(), turn, mv, depth)
		}(i, mv)
	}
	wg.Wait()

	for i, child := range children {
		if divide != nil {
			divide(mvs[i], child.Nodes)
		}
		res.add(child)
	}
	return res
}

func perftRoot(b *board.Board, turn board.Side, mv board.Move, depth int) Result {
	var res Result
	if depth == 1 {
		res.count(b, mv)
		return res
	}
	unPlay := b.Play(mv)
	runPerft(b, turn.Opposite(), depth-1, &res)
	unPlay()
	return res
}

func runPerft(b *board.Board, turn board.Side, depth int, res *Result) {
	if depth == 0 {
		res.Nodes++
		return
	}
	for _, mv := range expandPromotions(b.GenerateMoves(turn)) {
		if depth == 1 {
			res.count(b, mv)
			continue
		}
		unPlay := b.Play(mv)
		runPerft(b, turn.Opposite(), depth-1, res)
		unPlay()
	}
}

// count classifies a leaf move, which is played and undone to test for check.
func (r *Result) count(b *board.Board, mv board.Move) {
	r.Nodes++
	switch {
	case mv.IsCapture(b):
		r.Captures++
	case mv.IsAdjacentCapture(b):
		r.Captures++
		r.Adjacent++
	}
	if mv.Castle() != board.CastleDirectionUnknown {
		r.Castles++
	}
	if mv.Promote != board.KindUnknown {
		r.Promotions++
	}
	unPlay := b.Play(mv)
	if b.IsInCheck(mv.Piece.Side.Opposite()) {
		r.Checks++
	}
	unPlay()
}

// expandPromotions replaces every move reaching the last row with one move per promotion candidate.
func expandPromotions(mvs []board.Move) []board.Move {
	out := make([]board.Move, 0, len(mvs))
	for _, mv := range mvs {
		if !mv.IsPromotion() {
			out = append(out, mv)
			continue
		}
		for _, k := range board.PawnPromoteCandidates {
			mv.Promote = k
			out = append(out, mv)
		}
	}
	return out
}
