package boardmg

import (
	"fmt"

	bb "chess-bitboard/bitboard"
)

// MoveKind tags what a move does. The numeric values are stable and form a
// closed set; Valid rejects anything outside it.
type MoveKind uint8

const (
	Quiet       MoveKind = 0
	DoublePush  MoveKind = 1
	KingCastle  MoveKind = 2 // reserved, never generated
	QueenCastle MoveKind = 3 // reserved, never generated
	Capture     MoveKind = 4
	EnPassant   MoveKind = 5

	// Promotions carry one of four choices in their low two bits.
	QuietPromotion   MoveKind = 8
	CapturePromotion MoveKind = 12
)

// PromotionChoices is the number of promotion kinds per base move.
const PromotionChoices = 4

// PromotionKind returns the promotion kind for choice in [0, PromotionChoices).
func PromotionKind(capture bool, choice int) MoveKind {
	if choice < 0 || choice >= PromotionChoices {
		panic(fmt.Sprintf("boardmg.PromotionKind: choice %d out of range", choice))
	}
	if capture {
		return CapturePromotion + MoveKind(choice)
	}
	return QuietPromotion + MoveKind(choice)
}

// Valid reports whether k is one of the defined kinds.
func (k MoveKind) Valid() bool { return k <= EnPassant || (k >= QuietPromotion && k <= CapturePromotion+3) }

// IsPromotion reports kinds 8..15.
func (k MoveKind) IsPromotion() bool { return k >= QuietPromotion && k <= CapturePromotion+3 }

// IsCapture reports captures, en passant and capture promotions.
func (k MoveKind) IsCapture() bool {
	return k == Capture || k == EnPassant || (k >= CapturePromotion && k <= CapturePromotion+3)
}

// IsCastle reports the two reserved castling kinds.
func (k MoveKind) IsCastle() bool { return k == KingCastle || k == QueenCastle }

// PromotionChoice returns the promotion choice index in [0, 3], or -1 for
// non-promotions. Which piece each choice stands for is not decided here.
func (k MoveKind) PromotionChoice() int {
	if !k.IsPromotion() {
		return -1
	}
	return int(k & 3)
}

// Base strips the promotion: quiet promotions become Quiet and capture
// promotions become Capture. Other kinds are returned unchanged.
func (k MoveKind) Base() MoveKind {
	switch {
	case k >= CapturePromotion && k <= CapturePromotion+3:
		return Capture
	case k >= QuietPromotion && k < CapturePromotion:
		return Quiet
	}
	return k
}

func (k MoveKind) String() string {
	switch {
	case k == Quiet:
		return "quiet"
	case k == DoublePush:
		return "double-push"
	case k == KingCastle:
		return "king-castle"
	case k == QueenCastle:
		return "queen-castle"
	case k == Capture:
		return "capture"
	case k == EnPassant:
		return "en-passant"
	case k >= CapturePromotion && k <= CapturePromotion+3:
		return fmt.Sprintf("capture-promotion-%d", k.PromotionChoice())
	case k >= QuietPromotion && k < CapturePromotion:
		return fmt.Sprintf("promotion-%d", k.PromotionChoice())
	}
	return fmt.Sprintf("invalid(%d)", uint8(k))
}

// Move is a (kind, to, from) triple. Moves do not refer back to the position
// that produced them and go stale once that position changes.
type Move struct {
	Kind MoveKind
	To   bb.Square
	From bb.Square
}

// NewMove constructs a Move value from components.
func NewMove(kind MoveKind, to, from bb.Square) Move {
	return Move{Kind: kind, To: to, From: from}
}

// String renders the move as from/to coordinates, e.g. "e2e4". Promotions get
// their choice appended in brackets, e.g. "e7e8[2]".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if c := m.Kind.PromotionChoice(); c >= 0 {
		s += fmt.Sprintf("[%d]", c)
	}
	return s
}
