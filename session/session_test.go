package session_test

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
	"chess-bitboard/session"
)

func TestSelectAndPlay(t *testing.T) {
	var logs bytes.Buffer
	s := session.New(log.New(&logs, "", 0))

	moves, err := s.Select(12)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []mg.Move{
		mg.NewMove(mg.Quiet, 20, 12),
		mg.NewMove(mg.DoublePush, 28, 12),
	}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	if got := s.Destinations(); got != bb.Square(20).Bit()|bb.Square(28).Bit() {
		t.Errorf("destinations %v", bb.Indices(got))
	}

	m, err := s.Play(28)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if m.Kind != mg.DoublePush {
		t.Errorf("played %v, want double push", m.Kind)
	}
	if s.Selected() != bb.NoSquare || s.Ply() != 1 {
		t.Errorf("selection %v ply %d after play", s.Selected(), s.Ply())
	}
	if s.Position().SideToMove() != mg.Black {
		t.Errorf("side to move %v after play", s.Position().SideToMove())
	}
	if !strings.Contains(logs.String(), "ply 1: white plays e2e4") {
		t.Errorf("log output %q", logs.String())
	}
}

func TestSelectEmptyOrOpponentSquare(t *testing.T) {
	s := session.New(nil)
	for _, sq := range []bb.Square{28, 52, 4} {
		moves, err := s.Select(sq)
		if err != nil || len(moves) != 0 {
			t.Errorf("Select(%v) = %v, %v", sq, moves, err)
		}
		if s.Selected() != bb.NoSquare {
			t.Errorf("Select(%v) left a selection", sq)
		}
	}
	if _, err := s.Play(20); !errors.Is(err, session.ErrNoSelection) {
		t.Errorf("Play without selection: %v", err)
	}
	if _, err := s.Select(64); !errors.Is(err, session.ErrInvalidSquare) {
		t.Errorf("Select(64): %v", err)
	}
}

func TestPlayText(t *testing.T) {
	s := session.New(nil)
	for _, text := range []string{"e2e4", "d7d5", "e4d5"} {
		if _, err := s.PlayText(text); err != nil {
			t.Fatalf("PlayText(%q): %v", text, err)
		}
	}
	if got := s.Position().Pieces(mg.Black, mg.Pawn).Count(); got != 7 {
		t.Errorf("black has %d pawns after exd5, want 7", got)
	}

	cases := map[string]error{
		"e2e5":    session.ErrNoSuchMove,
		"z9e4":    session.ErrInvalidSquare,
		"e7":      session.ErrInvalidSquare,
		"e7e5[9]": session.ErrNoSuchMove,
	}
	for text, want := range cases {
		if _, err := s.PlayText(text); !errors.Is(err, want) {
			t.Errorf("PlayText(%q) = %v, want %v", text, err, want)
		}
	}
}

func TestParseSquare(t *testing.T) {
	for text, want := range map[string]bb.Square{"a1": 0, "h1": 7, "E2": 12, "h8": 63} {
		got, err := session.ParseSquare(text)
		if err != nil || got != want {
			t.Errorf("ParseSquare(%q) = %v, %v", text, got, err)
		}
	}
	for _, text := range []string{"", "i1", "a9", "a10"} {
		if _, err := session.ParseSquare(text); !errors.Is(err, session.ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) = %v", text, err)
		}
	}
}

func TestReset(t *testing.T) {
	s := session.New(nil)
	if _, err := s.PlayText("a2a4"); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if s.Ply() != 0 || s.Position().SideToMove() != mg.White || len(s.Position().MoveList()) != 16 {
		t.Errorf("reset did not restore the initial position")
	}
}
