package boardmg

import (
	"fmt"

	bb "chess-bitboard/bitboard"
)

// ApplyMove plays m for the side to move. m must come from the current
// MoveList; ApplyMove panics if the squares it names do not hold the pieces
// the move kind requires.
//
// Castling kinds change no pieces, and promotions move the pawn like the
// underlying quiet move or capture without replacing it. Every kind then
// clears the en-passant target (except a double push), passes the turn,
// refreshes occupancy and regenerates the move list.
func (p *Position) ApplyMove(m Move) {
	us := p.sideToMove
	them := us.Other()

	switch kind := m.Kind.Base(); kind {
	case Quiet:
		p.toggleMover(us, m)
	case DoublePush:
		p.toggleMover(us, m)
		p.enPassant = bb.Shift(m.To.Bit(), pushShift[them])
	case KingCastle, QueenCastle:
		// no generator emits castling yet
	case Capture:
		p.toggleMover(us, m)
		p.removeCaptured(them, m.To, m)
	case EnPassant:
		mask := m.From.Bit() | m.To.Bit()
		if p.pieces[us][Pawn]&m.From.Bit() == 0 {
			panic(fmt.Sprintf("boardmg.ApplyMove: en passant %v without a %s pawn on %v", m, us, m.From))
		}
		p.pieces[us][Pawn] ^= mask
		victim := bb.Shift(m.To.Bit(), pushShift[them])
		if p.pieces[them][Pawn]&victim == 0 {
			panic(fmt.Sprintf("boardmg.ApplyMove: en passant %v without a %s pawn to capture", m, them))
		}
		p.pieces[them][Pawn] &^= victim
	default:
		panic(fmt.Sprintf("boardmg.ApplyMove: invalid move kind %v", kind))
	}

	if m.Kind != DoublePush {
		p.enPassant = 0
	}
	p.sideToMove = them
	p.RefreshOccupancy()
	p.moveList = GenerateMovesInto(p, p.sideToMove, p.moveList)
}

// toggleMover flips the from and to bits on whichever of side's bitboards
// holds the from square.
func (p *Position) toggleMover(side Color, m Move) {
	from := m.From.Bit()
	mask := from | m.To.Bit()
	for pt := range p.pieces[side] {
		if p.pieces[side][pt]&from != 0 {
			p.pieces[side][pt] ^= mask
			return
		}
	}
	panic(fmt.Sprintf("boardmg.ApplyMove: %v has no %s piece on %v", m, side, m.From))
}

// removeCaptured clears sq from whichever of side's bitboards holds it.
func (p *Position) removeCaptured(side Color, sq bb.Square, m Move) {
	bit := sq.Bit()
	for pt := range p.pieces[side] {
		if p.pieces[side][pt]&bit != 0 {
			p.pieces[side][pt] &^= bit
			return
		}
	}
	panic(fmt.Sprintf("boardmg.ApplyMove: capture %v finds no %s piece on %v", m, side, sq))
}
