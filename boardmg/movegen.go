package boardmg

import bb "chess-bitboard/bitboard"

// Side-indexed shift amounts. Every pawn target set and every from-square
// reconstruction goes through these tables so White and Black share one code path.
var (
	pushShift = [2]int{White: bb.North, Black: bb.South}
	westShift = [2]int{White: bb.NorthWest, Black: bb.SouthWest}
	eastShift = [2]int{White: bb.NorthEast, Black: bb.SouthEast}

	// Rank a double push lands on (4th rank from each side's own edge)
	doublePushRank = [2]bb.Bitboard{White: bb.Rank4, Black: bb.Rank5}
)

// pieceGenerator appends the moves of one piece type for side into dst.
type pieceGenerator func(p *Position, side Color, dst []Move) []Move

// Generation order: king, queen, bishop, knight, rook, pawn.
var generationOrder = [NumPieceTypes]PieceType{King, Queen, Bishop, Knight, Rook, Pawn}

var generators = [NumPieceTypes]pieceGenerator{
	King:   generateKingMoves,
	Queen:  generateQueenMoves,
	Rook:   generateRookMoves,
	Bishop: generateBishopMoves,
	Knight: generateKnightMoves,
	Pawn:   generatePawnMoves,
}

// GenerateMoves returns the pseudo-legal moves for side in p. It does not
// modify p.
func GenerateMoves(p *Position, side Color) []Move {
	return GenerateMovesInto(p, side, make([]Move, 0, 64))
}

// GenerateMovesInto appends the pseudo-legal moves for side into dst[:0] and
// returns it, reusing dst's capacity.
func GenerateMovesInto(p *Position, side Color, dst []Move) []Move {
	moves := dst[:0]
	for _, pt := range generationOrder {
		moves = generators[pt](p, side, moves)
	}
	return moves
}

// GeneratePieceMoves returns the pseudo-legal moves of a single piece type.
func GeneratePieceMoves(p *Position, side Color, pt PieceType) []Move {
	return generators[pt](p, side, nil)
}

// ==========================
// Unimplemented piece types
// ==========================

// King, queen, rook, bishop and knight generation are not implemented and
// contribute no moves.

func generateKingMoves(_ *Position, _ Color, dst []Move) []Move   { return dst }
func generateQueenMoves(_ *Position, _ Color, dst []Move) []Move  { return dst }
func generateRookMoves(_ *Position, _ Color, dst []Move) []Move   { return dst }
func generateBishopMoves(_ *Position, _ Color, dst []Move) []Move { return dst }
func generateKnightMoves(_ *Position, _ Color, dst []Move) []Move { return dst }

// ==========================
// Pawns
// ==========================

// SinglePushTargets returns the empty squares one rank ahead of pawns.
func SinglePushTargets(pawns, empty bb.Bitboard, side Color) bb.Bitboard {
	return bb.Shift(pawns, pushShift[side]) & empty
}

// DoublePushTargets returns the squares reachable by a two-rank push: both
// squares ahead must be empty and the landing square on the side's fourth rank.
func DoublePushTargets(pawns, empty bb.Bitboard, side Color) bb.Bitboard {
	single := SinglePushTargets(pawns, empty, side)
	return SinglePushTargets(single, empty, side) & doublePushRank[side]
}

// PawnWestAttacks returns the attackable squares hit diagonally toward the A
// file. Pawns on the A file are excluded so nothing wraps to the H file.
func PawnWestAttacks(pawns, attackable bb.Bitboard, side Color) bb.Bitboard {
	return bb.Shift(pawns&bb.NotFileA, westShift[side]) & attackable
}

// PawnEastAttacks is PawnWestAttacks toward the H file.
func PawnEastAttacks(pawns, attackable bb.Bitboard, side Color) bb.Bitboard {
	return bb.Shift(pawns&bb.NotFileH, eastShift[side]) & attackable
}

func generatePawnMoves(p *Position, side Color, dst []Move) []Move {
	pawns := p.pieces[side][Pawn]
	if pawns == 0 {
		return dst
	}
	empty := p.empty
	enemy := p.occupancy[side.Other()]

	// Single pushes
	for _, to := range bb.Indices(SinglePushTargets(pawns, empty, side)) {
		dst = appendPawnMove(dst, Quiet, to, to-bb.Square(pushShift[side]))
	}

	// Double pushes
	for _, to := range bb.Indices(DoublePushTargets(pawns, empty, side)) {
		dst = append(dst, NewMove(DoublePush, to, to-bb.Square(2*pushShift[side])))
	}

	// Captures, then en passant; west before east in each group
	groups := [...]struct {
		kind    MoveKind
		targets bb.Bitboard
		offset  int
	}{
		{Capture, PawnWestAttacks(pawns, enemy, side), westShift[side]},
		{Capture, PawnEastAttacks(pawns, enemy, side), eastShift[side]},
		{EnPassant, PawnWestAttacks(pawns, p.enPassant, side), westShift[side]},
		{EnPassant, PawnEastAttacks(pawns, p.enPassant, side), eastShift[side]},
	}
	for _, g := range groups {
		for _, to := range bb.Indices(g.targets) {
			dst = appendPawnMove(dst, g.kind, to, to-bb.Square(g.offset))
		}
	}
	return dst
}

// appendPawnMove appends one move, or the four promotion moves when the
// target is on a back rank.
func appendPawnMove(dst []Move, kind MoveKind, to, from bb.Square) []Move {
	if !bb.BackRanks.Has(to) {
		return append(dst, NewMove(kind, to, from))
	}
	capture := kind.IsCapture()
	for choice := 0; choice < PromotionChoices; choice++ {
		dst = append(dst, NewMove(PromotionKind(capture, choice), to, from))
	}
	return dst
}
