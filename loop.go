package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
	"chess-bitboard/render"
	"chess-bitboard/session"
)

// loopConfig carries the command-line settings into the loop.
type loopConfig struct {
	svgPath    string
	squareSize int
}

var pieceNames = map[string]mg.PieceType{
	"king": mg.King, "queen": mg.Queen, "rook": mg.Rook,
	"bishop": mg.Bishop, "knight": mg.Knight, "pawn": mg.Pawn,
}

// commandLoop reads commands from in until "quit" or EOF and writes replies
// to out. All state lives in s.
func commandLoop(in io.Reader, out io.Writer, s *session.Session, cfg loopConfig) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return nil
		case "new":
			s.Reset()
			fmt.Fprintln(out, "ok")
		case "board":
			fmt.Fprint(out, render.Text(s.Position()))
			fmt.Fprintf(out, "%s to move\n", s.Position().SideToMove())
		case "moves":
			moves := s.Position().MoveList()
			names := make([]string, len(moves))
			for i, m := range moves {
				names[i] = m.String()
			}
			fmt.Fprintf(out, "%d moves: %s\n", len(moves), strings.Join(names, " "))
		case "bits":
			if len(tokens) != 3 {
				fmt.Fprintln(out, "error: usage: bits <white|black> <piece>")
				continue
			}
			pt, ok := pieceNames[strings.ToLower(tokens[2])]
			side := mg.White
			if strings.ToLower(tokens[1]) == "black" {
				side = mg.Black
			} else if strings.ToLower(tokens[1]) != "white" {
				ok = false
			}
			if !ok {
				fmt.Fprintln(out, "error: usage: bits <white|black> <piece>")
				continue
			}
			fmt.Fprintln(out, render.BitboardString(s.Position().Pieces(side, pt)))
		case "select":
			if len(tokens) != 2 {
				fmt.Fprintln(out, "error: usage: select <square>")
				continue
			}
			sq, err := session.ParseSquare(tokens[1])
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			selectSquare(out, s, sq)
		case "click":
			if len(tokens) != 3 {
				fmt.Fprintln(out, "error: usage: click <x> <y>")
				continue
			}
			x, errX := strconv.Atoi(tokens[1])
			y, errY := strconv.Atoi(tokens[2])
			if errX != nil || errY != nil {
				fmt.Fprintln(out, "error: click coordinates must be integers")
				continue
			}
			sq, ok := render.SquareAt(x, y, cfg.squareSize)
			if !ok {
				fmt.Fprintln(out, "error: click outside the board")
				continue
			}
			click(out, s, sq)
		case "move":
			if len(tokens) != 2 {
				fmt.Fprintln(out, "error: usage: move <from><to>")
				continue
			}
			m, err := s.PlayText(tokens[1])
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "played %v (%v)\n", m, m.Kind)
		case "svg":
			path := cfg.svgPath
			if len(tokens) > 1 {
				path = tokens[1]
			}
			if err := writeSVG(path, s, cfg.squareSize); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "wrote %s\n", path)
		default:
			fmt.Fprintf(out, "error: unknown command %q\n", tokens[0])
		}
	}
	return scanner.Err()
}

func selectSquare(out io.Writer, s *session.Session, sq bb.Square) {
	moves, err := s.Select(sq)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	if len(moves) == 0 {
		fmt.Fprintf(out, "no moves from %v\n", sq)
		return
	}
	fmt.Fprintf(out, "selected %v: %v\n", sq, bb.Indices(s.Destinations()))
}

// click plays to sq when it is a destination of the current selection and
// otherwise selects sq.
func click(out io.Writer, s *session.Session, sq bb.Square) {
	if s.Destinations().Has(sq) {
		m, err := s.Play(sq)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "played %v (%v)\n", m, m.Kind)
		return
	}
	selectSquare(out, s, sq)
}

func writeSVG(path string, s *session.Session, squareSize int) error {
	if path == "" {
		return fmt.Errorf("no svg path given")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	render.SVG(f, s.Position(), render.Options{
		SquareSize: squareSize,
		Selected:   s.Selected(),
		Targets:    s.Destinations(),
		Title:      fmt.Sprintf("ply %d, %s to move", s.Ply(), s.Position().SideToMove()),
	})
	return f.Close()
}
