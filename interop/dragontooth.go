// Package interop bridges boardmg positions and dylhunn/dragontoothmg boards.
// dragontoothmg parses fixture FENs and serves as the reference generator
// the pawn move list is checked against.
package interop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
)

var ErrBadFEN = errors.New("invalid FEN")

// ParseFEN parses fen with dragontoothmg and converts the result.
func ParseFEN(fen string) (pos *mg.Position, board *dragontoothmg.Board, err error) {
	if len(strings.Fields(fen)) < 4 {
		return nil, nil, fmt.Errorf("%w: %q", ErrBadFEN, fen)
	}
	defer func() {
		if r := recover(); r != nil {
			pos, board, err = nil, nil, fmt.Errorf("%w: %q: %v", ErrBadFEN, fen, r)
		}
	}()
	b := dragontoothmg.ParseFen(fen)
	pos, err = FromDragontooth(&b)
	if err != nil {
		return nil, nil, err
	}
	return pos, &b, nil
}

// FromDragontooth converts a dragontoothmg board into a Position with the
// same pieces, side to move and en-passant target.
func FromDragontooth(b *dragontoothmg.Board) (*mg.Position, error) {
	var pieces [2][mg.NumPieceTypes]bb.Bitboard
	for c, side := range [2]*dragontoothmg.Bitboards{&b.White, &b.Black} {
		pieces[c][mg.King] = bb.Bitboard(side.Kings)
		pieces[c][mg.Queen] = bb.Bitboard(side.Queens)
		pieces[c][mg.Rook] = bb.Bitboard(side.Rooks)
		pieces[c][mg.Bishop] = bb.Bitboard(side.Bishops)
		pieces[c][mg.Knight] = bb.Bitboard(side.Knights)
		pieces[c][mg.Pawn] = bb.Bitboard(side.Pawns)
	}
	side := mg.White
	if !b.Wtomove {
		side = mg.Black
	}
	ep, err := enPassantTarget(b)
	if err != nil {
		return nil, err
	}
	return mg.NewPositionFromBitboards(pieces, side, ep)
}

// enPassantTarget reads the en-passant field back out of the board's FEN;
// dragontoothmg keeps the square itself unexported.
func enPassantTarget(b *dragontoothmg.Board) (bb.Bitboard, error) {
	fields := strings.Fields(b.ToFen())
	if len(fields) < 4 {
		return 0, fmt.Errorf("%w: %q", ErrBadFEN, b.ToFen())
	}
	f := fields[3]
	if f == "-" {
		return 0, nil
	}
	if len(f) != 2 || f[0] < 'a' || f[0] > 'h' || f[1] < '1' || f[1] > '8' {
		return 0, fmt.Errorf("%w: en passant field %q", ErrBadFEN, f)
	}
	return bb.Square(int(f[1]-'1')*8 + int(f[0]-'a')).Bit(), nil
}

// Promotion pieces in the order their choice index is assigned.
var promotionOrder = []dragontoothmg.Piece{
	dragontoothmg.Queen, dragontoothmg.Rook, dragontoothmg.Bishop, dragontoothmg.Knight,
}

// ReferencePawnMoves returns dragontoothmg's legal pawn moves for the side to
// move, translated into boardmg moves. In positions without checks or pins
// they equal the pseudo-legal pawn moves boardmg generates.
func ReferencePawnMoves(b *dragontoothmg.Board, ep bb.Bitboard) []mg.Move {
	own, opp := &b.White, &b.Black
	if !b.Wtomove {
		own, opp = opp, own
	}
	var out []mg.Move
	for _, m := range b.GenerateLegalMoves() {
		from, to := bb.Square(m.From()), bb.Square(m.To())
		if own.Pawns&uint64(from.Bit()) == 0 {
			continue
		}
		capture := opp.All&uint64(to.Bit()) != 0
		var kind mg.MoveKind
		switch {
		case m.Promote() != dragontoothmg.Nothing:
			kind = mg.PromotionKind(capture, slices.Index(promotionOrder, m.Promote()))
		case capture:
			kind = mg.Capture
		case ep.Has(to) && from.File() != to.File():
			kind = mg.EnPassant
		case to-from == 16 || from-to == 16:
			kind = mg.DoublePush
		default:
			kind = mg.Quiet
		}
		out = append(out, mg.NewMove(kind, to, from))
	}
	return out
}

// Mismatch records a position where boardmg and the reference disagree.
type Mismatch struct {
	Path    []mg.Move // moves from the root to the position
	Missing []mg.Move // reference moves boardmg did not generate
	Extra   []mg.Move // boardmg moves the reference does not have
}

// CrossCheck walks the pawn move tree of p to depth, playing every move on
// both p and b, and reports each position whose pawn move lists differ.
// Promotions are compared but not descended into because boardmg keeps the
// pawn while dragontoothmg promotes it. Positions with checks or pins show up
// as mismatches since the reference is legal and boardmg pseudo-legal.
// p and b are restored before returning.
func CrossCheck(p *mg.Position, b *dragontoothmg.Board, depth int) ([]Mismatch, error) {
	var out []Mismatch
	err := crossCheck(p, b, depth, nil, &out)
	return out, err
}

func crossCheck(p *mg.Position, b *dragontoothmg.Board, depth int, path []mg.Move, out *[]Mismatch) error {
	ep, err := enPassantTarget(b)
	if err != nil {
		return err
	}
	ours := p.MoveList()
	missing, extra := Diff(ours, ReferencePawnMoves(b, ep))
	if len(missing) > 0 || len(extra) > 0 {
		*out = append(*out, Mismatch{Path: slices.Clone(path), Missing: missing, Extra: extra})
	}
	if depth <= 1 {
		return nil
	}
	legal := b.GenerateLegalMoves()
	for _, m := range ours {
		if m.Kind.IsPromotion() {
			continue
		}
		i := slices.IndexFunc(legal, func(dm dragontoothmg.Move) bool {
			return bb.Square(dm.From()) == m.From && bb.Square(dm.To()) == m.To
		})
		if i < 0 {
			continue
		}
		s := p.Snapshot()
		p.ApplyMove(m)
		undo := b.Apply(legal[i])
		err := crossCheck(p, b, depth-1, append(path, m), out)
		undo()
		p.Restore(s)
		if err != nil {
			return err
		}
	}
	return nil
}

// Diff compares two move lists as sets and returns the moves only in want
// (missing) and only in got (extra), each sorted by their string form.
func Diff(got, want []mg.Move) (missing, extra []mg.Move) {
	inGot := make(map[mg.Move]bool, len(got))
	for _, m := range got {
		inGot[m] = true
	}
	inWant := make(map[mg.Move]bool, len(want))
	for _, m := range want {
		inWant[m] = true
		if !inGot[m] {
			missing = append(missing, m)
		}
	}
	for _, m := range got {
		if !inWant[m] {
			extra = append(extra, m)
		}
	}
	sortMoves(missing)
	sortMoves(extra)
	return missing, extra
}

func sortMoves(moves []mg.Move) {
	keys := make([]string, len(moves))
	byKey := make(map[string]mg.Move, len(moves))
	for i, m := range moves {
		k := m.String() + "/" + m.Kind.String()
		keys[i] = k
		byKey[k] = m
	}
	slices.Sort(keys)
	for i, k := range keys {
		moves[i] = byKey[k]
	}
}
