// Package session holds the interaction state around a position: which square
// is selected and which of the engine's moves start there. It is the context
// object handed to input handlers.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/exp/slices"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
)

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrNoSelection   = errors.New("no square selected")
	ErrNoSuchMove    = errors.New("move not available")
)

// Session owns one Position. It is not safe for concurrent use.
type Session struct {
	pos      *mg.Position
	selected bb.Square
	log      *log.Logger
	ply      int
}

// New starts a session on the initial position. A nil logger discards output.
func New(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{pos: mg.NewPosition(), selected: bb.NoSquare, log: logger}
}

// Reset returns to the initial position and clears the selection.
func (s *Session) Reset() {
	s.pos = mg.NewPosition()
	s.selected = bb.NoSquare
	s.ply = 0
	s.log.Printf("new game")
}

// Position exposes the current position for reading.
func (s *Session) Position() *mg.Position { return s.pos }

// Selected returns the selected square, or bitboard.NoSquare.
func (s *Session) Selected() bb.Square { return s.selected }

// Ply returns the number of moves played since the last reset.
func (s *Session) Ply() int { return s.ply }

// Select marks sq and returns the moves in the current list that start there.
// Selecting a square with no moves clears the selection.
func (s *Session) Select(sq bb.Square) ([]mg.Move, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("select %d: %w", sq, ErrInvalidSquare)
	}
	moves := Candidates(s.pos.MoveList(), sq)
	if len(moves) == 0 {
		s.selected = bb.NoSquare
		return nil, nil
	}
	s.selected = sq
	return moves, nil
}

// Destinations returns the distinct target squares of the selection as a bitboard.
func (s *Session) Destinations() bb.Bitboard {
	if s.selected == bb.NoSquare {
		return 0
	}
	var targets bb.Bitboard
	for _, m := range Candidates(s.pos.MoveList(), s.selected) {
		targets |= m.To.Bit()
	}
	return targets
}

// Play moves the selected piece to `to`. Where several moves share the same
// squares (promotions) the first one in the list is played.
func (s *Session) Play(to bb.Square) (mg.Move, error) {
	if s.selected == bb.NoSquare {
		return mg.Move{}, ErrNoSelection
	}
	return s.play(s.selected, to, -1)
}

// PlayText plays a move written as "e2e4", optionally followed by a promotion
// choice in brackets as Move.String prints it ("b7b8[2]").
func (s *Session) PlayText(text string) (mg.Move, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	choice := -1
	if i := strings.IndexByte(text, '['); i >= 0 {
		if !strings.HasSuffix(text, "]") || i != len(text)-3 || text[i+1] < '0' || text[i+1] > '3' {
			return mg.Move{}, fmt.Errorf("move %q: %w", text, ErrNoSuchMove)
		}
		choice = int(text[i+1] - '0')
		text = text[:i]
	}
	if len(text) != 4 {
		return mg.Move{}, fmt.Errorf("move %q: %w", text, ErrInvalidSquare)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return mg.Move{}, err
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return mg.Move{}, err
	}
	return s.play(from, to, choice)
}

func (s *Session) play(from, to bb.Square, choice int) (mg.Move, error) {
	moves := Candidates(s.pos.MoveList(), from)
	i := slices.IndexFunc(moves, func(m mg.Move) bool {
		return m.To == to && (choice < 0 || m.Kind.PromotionChoice() == choice)
	})
	if i < 0 {
		return mg.Move{}, fmt.Errorf("%v%v: %w", from, to, ErrNoSuchMove)
	}
	m := moves[i]
	mover := s.pos.SideToMove()
	s.pos.ApplyMove(m)
	s.selected = bb.NoSquare
	s.ply++
	s.log.Printf("ply %d: %s plays %v (%v)", s.ply, mover, m, m.Kind)
	return m, nil
}

// Candidates filters moves down to those starting on from.
func Candidates(moves []mg.Move, from bb.Square) []mg.Move {
	var out []mg.Move
	for _, m := range moves {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

// ParseSquare reads algebraic coordinates such as "e2".
func ParseSquare(s string) (bb.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return bb.NoSquare, fmt.Errorf("%q: %w", s, ErrInvalidSquare)
	}
	return bb.Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}
