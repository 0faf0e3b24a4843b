package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// run executes a command, prints its combined output and returns the exit code.
func run(logger *log.Logger, name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	logger.Printf("running %s: %v", name, err)
	return 1
}

func main() {
	maxDepth := flag.Int("maxdepth", 6, "Deepest pawn perft to time from the initial position")
	benchtime := flag.String("benchtime", "1s", "Passed to go test -benchtime")
	flag.Parse()
	logger := log.New(os.Stderr, "benchrun: ", 0)

	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run(logger, "go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPawn perft:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for d := 3; d <= *maxDepth; d++ {
		run(logger, "go", "run", "./cmd/perft", "-depth", fmt.Sprint(d), "-label", "Initial")
	}
	run(logger, "go", "run", "./cmd/perft", "-fen",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"-depth", "4", "-label", "Sicilian")

	fmt.Println("\nCross-check against dragontoothmg:")
	os.Exit(run(logger, "go", "run", "./cmd/perft", "-crosscheck", "-depth", "4"))
}
