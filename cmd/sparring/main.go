package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/daystram/sparring/board"
	"github.com/daystram/sparring/engine"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth")
	perftParallel = flag.Bool("perft.parallel", true, "search root moves in parallel in perft mode")
	perftDivide   = flag.Bool("perft.divide", false, "print node count per root move in perft mode")

	selfplayRun   = flag.Bool("selfplay", false, "run self-play mode")
	selfplaySteps = flag.Int("selfplay.steps", 200, "maximum half-moves in self-play mode")

	playRun  = flag.Bool("play", false, "play against the engine")
	playSide = flag.String("play.side", "white", "side played by the human in play mode")

	svgRun = flag.String("svg", "", "write the position as SVG to the given file")
	svgSq  = flag.String("svg.select", "", "square whose legal moves are marked in the SVG")

	searchDepth    = flag.Int("search.depth", int(engine.DefaultDepth), "search depth")
	searchNodes    = flag.Uint64("search.nodes", 0, "search node limit, 0 for none")
	searchMovetime = flag.Duration("search.movetime", 0, "search time limit per move, 0 for none")
	searchNoCap    = flag.Bool("search.nocapture", false, "disable the capture shortcut")
	debug          = flag.Bool("debug", false, "log search details")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *perftRun {
		return perft(*perftDepth, fen, *perftParallel, *perftDivide)
	}
	if *svgRun != "" {
		return writeSVG(*svgRun, fen, *svgSq)
	}
	if *selfplayRun {
		return selfplay(fen, *selfplaySteps)
	}
	if *playRun {
		return play(fen, *playSide, os.Stdin, os.Stdout)
	}

	flag.Usage()
	return nil
}

func newEngine() *engine.Engine {
	return engine.NewEngine(&engine.EngineConfig{
		Depth:                  uint8(*searchDepth),
		NodeLimit:              *searchNodes,
		Movetime:               *searchMovetime,
		DisableCaptureShortcut: *searchNoCap,
		Logger:                 log.Println,
		Debug:                  *debug,
	})
}
