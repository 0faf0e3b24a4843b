package main

import (
	"flag"
	"log"
	"os"

	"chess-bitboard/render"
	"chess-bitboard/session"
)

func main() {
	svgPath := flag.String("svg", "board.svg", "Default output path for the svg command")
	squareSize := flag.Int("square", render.DefaultSquareSize, "Square size in pixels for svg output and click mapping")
	verbose := flag.Bool("v", false, "Log every applied move to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "chess: ", 0)
	var moveLog *log.Logger
	if *verbose {
		moveLog = logger
	}
	if *squareSize <= 0 {
		logger.Fatalf("-square must be > 0, got %d", *squareSize)
	}

	s := session.New(moveLog)
	cfg := loopConfig{svgPath: *svgPath, squareSize: *squareSize}
	if err := commandLoop(os.Stdin, os.Stdout, s, cfg); err != nil {
		logger.Fatalf("reading commands: %v", err)
	}
}
