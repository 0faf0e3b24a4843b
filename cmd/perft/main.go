package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	mg "chess-bitboard/boardmg"
	"chess-bitboard/interop"
)

func main() {
	fen := flag.String("fen", "", "FEN of the root position, parsed by dragontoothmg (defaults to the initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	crosscheck := flag.Bool("crosscheck", false, "Compare pawn move lists against dragontoothmg down to -depth")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	logger := log.New(os.Stderr, "perft: ", 0)
	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	var (
		pos   *mg.Position
		board *dragontoothmg.Board
	)
	if *fen == "" && !*crosscheck {
		pos = mg.NewPosition()
	} else {
		if *fen == "" {
			*fen = dragontoothmg.Startpos
		}
		var err error
		pos, board, err = interop.ParseFEN(*fen)
		if err != nil {
			logger.Printf("%v", err)
			os.Exit(2)
		}
	}

	if *crosscheck {
		mismatches, err := interop.CrossCheck(pos, board, *depth)
		if err != nil {
			logger.Printf("crosscheck: %v", err)
			os.Exit(2)
		}
		for _, m := range mismatches {
			fmt.Printf("after %v: missing %v extra %v\n", m.Path, m.Missing, m.Extra)
		}
		fmt.Printf("Mismatches: %d\n", len(mismatches))
		if len(mismatches) > 0 {
			os.Exit(1)
		}
		return
	}

	// Optional divide output
	if *divide {
		div := mg.PerftDivide(pos, *depth)
		// Sort moves for stable output
		byName := make(map[string]uint64, len(div))
		for m, n := range div {
			byName[m.String()+" "+m.Kind.String()] = n
		}
		names := maps.Keys(byName)
		slices.Sort(names)
		var sum uint64
		for _, name := range names {
			fmt.Printf("%s: %d\n", name, byName[name])
			sum += byName[name]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			logger.Printf("creating cpuprofile: %v", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Printf("start cpu profile: %v", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += mg.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			logger.Printf("creating memprofile: %v", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Printf("write heap profile: %v", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}
