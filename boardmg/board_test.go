package boardmg_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
)

// sq converts "e2" style coordinates to a square index.
func sq(s string) bb.Square {
	return bb.Square(int(s[1]-'1')*8 + int(s[0]-'a'))
}

type placement struct {
	c  mg.Color
	pt mg.PieceType
	at string
}

// build returns a position holding exactly the given pieces.
func build(t *testing.T, side mg.Color, ep bb.Bitboard, ps ...placement) *mg.Position {
	t.Helper()
	var pieces [2][mg.NumPieceTypes]bb.Bitboard
	for _, pl := range ps {
		pieces[pl.c][pl.pt] |= sq(pl.at).Bit()
	}
	p, err := mg.NewPositionFromBitboards(pieces, side, ep)
	if err != nil {
		t.Fatalf("NewPositionFromBitboards: %v", err)
	}
	return p
}

func allPieces(p *mg.Position) [2][mg.NumPieceTypes]bb.Bitboard {
	var out [2][mg.NumPieceTypes]bb.Bitboard
	for c := mg.White; c <= mg.Black; c++ {
		for pt := mg.King; pt < mg.NumPieceTypes; pt++ {
			out[c][pt] = p.Pieces(c, pt)
		}
	}
	return out
}

func TestInitialPosition(t *testing.T) {
	p := mg.NewPosition()
	if !p.Validate() {
		t.Fatalf("initial position invalid")
	}
	if p.SideToMove() != mg.White {
		t.Fatalf("side to move %v, want white", p.SideToMove())
	}
	if p.EnPassantTarget() != 0 {
		t.Fatalf("initial en passant target %#x", uint64(p.EnPassantTarget()))
	}
	if got := p.AllOccupied(); got != bb.Rank1|bb.Rank2|bb.Rank7|bb.Rank8 {
		t.Fatalf("initial occupancy %#x", uint64(got))
	}

	spots := map[string]struct {
		c  mg.Color
		pt mg.PieceType
	}{
		"a1": {mg.White, mg.Rook}, "b1": {mg.White, mg.Knight}, "c1": {mg.White, mg.Bishop},
		"d1": {mg.White, mg.Queen}, "e1": {mg.White, mg.King}, "h1": {mg.White, mg.Rook},
		"e2": {mg.White, mg.Pawn}, "a8": {mg.Black, mg.Rook}, "d8": {mg.Black, mg.Queen},
		"e8": {mg.Black, mg.King}, "g8": {mg.Black, mg.Knight}, "h7": {mg.Black, mg.Pawn},
	}
	for name, want := range spots {
		c, pt, ok := p.PieceAt(sq(name))
		if !ok || c != want.c || pt != want.pt {
			t.Errorf("%s: got %v %v (%v), want %v %v", name, c, pt, ok, want.c, want.pt)
		}
	}
	if _, _, ok := p.PieceAt(sq("e4")); ok {
		t.Errorf("e4 should be empty")
	}
}

func TestInitialPawnTargets(t *testing.T) {
	p := mg.NewPosition()
	pawns := p.Pieces(mg.White, mg.Pawn)
	if got := mg.SinglePushTargets(pawns, p.Empty(), mg.White); got != bb.Rank3 {
		t.Errorf("white single push targets %v", bb.Indices(got))
	}
	if got := mg.DoublePushTargets(pawns, p.Empty(), mg.White); got != bb.Rank4 {
		t.Errorf("white double push targets %v", bb.Indices(got))
	}
	black := p.Pieces(mg.Black, mg.Pawn)
	if got := mg.SinglePushTargets(black, p.Empty(), mg.Black); got != bb.Rank6 {
		t.Errorf("black single push targets %v", bb.Indices(got))
	}
	if got := mg.DoublePushTargets(black, p.Empty(), mg.Black); got != bb.Rank5 {
		t.Errorf("black double push targets %v", bb.Indices(got))
	}
}

func TestInitialMoveList(t *testing.T) {
	p := mg.NewPosition()
	moves := p.MoveList()
	if len(moves) != 16 {
		t.Fatalf("expected 16 moves, got %d: %v", len(moves), moves)
	}
	var want []mg.Move
	for f := bb.Square(0); f < 8; f++ {
		want = append(want, mg.NewMove(mg.Quiet, 16+f, 8+f))
	}
	for f := bb.Square(0); f < 8; f++ {
		want = append(want, mg.NewMove(mg.DoublePush, 24+f, 8+f))
	}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("initial move list mismatch (-want +got):\n%s", diff)
	}
}

func TestBlackMirrorsWhite(t *testing.T) {
	p := mg.NewPosition()
	white := mg.GenerateMoves(p, mg.White)
	black := mg.GenerateMoves(p, mg.Black)
	if len(white) != len(black) {
		t.Fatalf("white %d moves, black %d", len(white), len(black))
	}
	flip := func(s bb.Square) bb.Square { return bb.BitScanForward(bb.VerticalFlip(s.Bit())) }
	seen := make(map[mg.Move]bool, len(white))
	for _, m := range white {
		seen[mg.NewMove(m.Kind, flip(m.To), flip(m.From))] = true
	}
	for _, m := range black {
		if !seen[m] {
			t.Errorf("black move %v has no mirrored white move", m)
		}
	}
}

func TestUnimplementedGeneratorsAreEmpty(t *testing.T) {
	p := mg.NewPosition()
	for _, c := range []mg.Color{mg.White, mg.Black} {
		for _, pt := range []mg.PieceType{mg.King, mg.Queen, mg.Rook, mg.Bishop, mg.Knight} {
			if got := mg.GeneratePieceMoves(p, c, pt); len(got) != 0 {
				t.Errorf("%v %v generator returned %d moves", c, pt, len(got))
			}
		}
		if got := mg.GeneratePieceMoves(p, c, mg.Pawn); len(got) != 16 {
			t.Errorf("%v pawn generator returned %d moves", c, len(got))
		}
	}
}

func TestEdgeFilesDoNotWrap(t *testing.T) {
	for rank := 0; rank < 8; rank++ {
		a := bb.Square(rank * 8)
		h := bb.Square(rank*8 + 7)
		for _, side := range []mg.Color{mg.White, mg.Black} {
			if got := mg.PawnWestAttacks(a.Bit(), bb.Full, side); got != 0 {
				t.Errorf("%v pawn on %v attacks west: %v", side, a, bb.Indices(got))
			}
			if got := mg.PawnEastAttacks(h.Bit(), bb.Full, side); got != 0 {
				t.Errorf("%v pawn on %v attacks east: %v", side, h, bb.Indices(got))
			}
		}
	}
	// The opposite diagonals from the edge files still exist.
	if got := mg.PawnEastAttacks(sq("a2").Bit(), bb.Full, mg.White); got != sq("b3").Bit() {
		t.Errorf("a2 east attack %v", bb.Indices(got))
	}
	if got := mg.PawnWestAttacks(sq("h7").Bit(), bb.Full, mg.Black); got != sq("g6").Bit() {
		t.Errorf("h7 west attack %v", bb.Indices(got))
	}
}

func TestPawnCaptureGeneration(t *testing.T) {
	p := build(t, mg.White, 0,
		placement{mg.White, mg.King, "e1"},
		placement{mg.Black, mg.King, "e8"},
		placement{mg.White, mg.Pawn, "e4"},
		placement{mg.Black, mg.Pawn, "d5"},
		placement{mg.Black, mg.Knight, "f5"},
		placement{mg.Black, mg.Pawn, "e5"},
	)
	want := []mg.Move{
		mg.NewMove(mg.Capture, sq("d5"), sq("e4")),
		mg.NewMove(mg.Capture, sq("f5"), sq("e4")),
	}
	if diff := cmp.Diff(want, p.MoveList()); diff != "" {
		t.Errorf("capture moves mismatch (-want +got):\n%s", diff)
	}
}

func TestPromotionGeneration(t *testing.T) {
	p := build(t, mg.White, 0,
		placement{mg.White, mg.King, "e1"},
		placement{mg.Black, mg.King, "h8"},
		placement{mg.White, mg.Pawn, "b7"},
		placement{mg.Black, mg.Rook, "a8"},
	)
	var want []mg.Move
	for choice := 0; choice < mg.PromotionChoices; choice++ {
		want = append(want, mg.NewMove(mg.PromotionKind(false, choice), sq("b8"), sq("b7")))
	}
	for choice := 0; choice < mg.PromotionChoices; choice++ {
		want = append(want, mg.NewMove(mg.PromotionKind(true, choice), sq("a8"), sq("b7")))
	}
	got := p.MoveList()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("promotion moves mismatch (-want +got):\n%s", diff)
	}
	for i, m := range got {
		if int(m.Kind) != 8+i {
			t.Errorf("move %d kind %d, want %d", i, m.Kind, 8+i)
		}
	}
}

func TestBlackPromotionGeneration(t *testing.T) {
	p := build(t, mg.Black, 0,
		placement{mg.White, mg.King, "a1"},
		placement{mg.Black, mg.King, "h8"},
		placement{mg.Black, mg.Pawn, "g2"},
		placement{mg.White, mg.Knight, "h1"},
	)
	got := p.MoveList()
	if len(got) != 8 {
		t.Fatalf("expected 8 promotion moves, got %v", got)
	}
	for _, m := range got[:4] {
		if m.Kind.Base() != mg.Quiet || m.To != sq("g1") || m.From != sq("g2") {
			t.Errorf("unexpected quiet promotion %v (%v)", m, m.Kind)
		}
	}
	for _, m := range got[4:] {
		if m.Kind.Base() != mg.Capture || m.To != sq("h1") || m.From != sq("g2") {
			t.Errorf("unexpected capture promotion %v (%v)", m, m.Kind)
		}
	}
}
