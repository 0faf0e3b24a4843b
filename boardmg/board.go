package boardmg

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	bb "chess-bitboard/bitboard"
)

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType indexes the six per-side bitboards.
type PieceType uint8

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	NumPieceTypes
)

var pieceLetters = [NumPieceTypes]byte{'K', 'Q', 'R', 'B', 'N', 'P'}

// Letter returns the piece letter in the case used for side c (upper for White).
func (pt PieceType) Letter(c Color) byte {
	l := pieceLetters[pt]
	if c == Black {
		l += 'a' - 'A'
	}
	return l
}

func (pt PieceType) String() string {
	switch pt {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	}
	return "none"
}

// ErrInconsistent is returned when a set of piece bitboards overlaps.
var ErrInconsistent = errors.New("inconsistent piece bitboards")

// Bitboards exposes one side's per-piece bitboards together with its occupancy.
type Bitboards struct {
	Kings   bb.Bitboard
	Queens  bb.Bitboard
	Rooks   bb.Bitboard
	Bishops bb.Bitboard
	Knights bb.Bitboard
	Pawns   bb.Bitboard
	All     bb.Bitboard
}

// Position is the board state. The occupancy fields are caches derived from
// pieces and are rebuilt by RefreshOccupancy whenever a piece bitboard moves.
type Position struct {
	// Piece bitboards indexed by side then piece type
	pieces [2][NumPieceTypes]bb.Bitboard

	occupancy   [2]bb.Bitboard
	allOccupied bb.Bitboard
	empty       bb.Bitboard

	// Square skipped by the preceding double push, or zero
	enPassant bb.Bitboard

	sideToMove Color

	// Pseudo-legal moves for sideToMove
	moveList []Move
}

// Starting layout, indexed like Position.pieces.
var initialPieces = [2][NumPieceTypes]bb.Bitboard{
	White: {
		King:   0x0000000000000010,
		Queen:  0x0000000000000008,
		Rook:   0x0000000000000081,
		Bishop: 0x0000000000000024,
		Knight: 0x0000000000000042,
		Pawn:   0x000000000000FF00,
	},
	Black: {
		King:   0x1000000000000000,
		Queen:  0x0800000000000000,
		Rook:   0x8100000000000000,
		Bishop: 0x2400000000000000,
		Knight: 0x4200000000000000,
		Pawn:   0x00FF000000000000,
	},
}

// NewPosition returns the standard initial position with White to move.
func NewPosition() *Position {
	p := &Position{pieces: initialPieces, sideToMove: White}
	p.RefreshOccupancy()
	p.moveList = GenerateMoves(p, p.sideToMove)
	return p
}

// NewPositionFromBitboards builds a position from arbitrary piece bitboards.
// The en-passant target must be empty or a single square.
func NewPositionFromBitboards(pieces [2][NumPieceTypes]bb.Bitboard, side Color, enPassant bb.Bitboard) (*Position, error) {
	p := &Position{pieces: pieces, sideToMove: side, enPassant: enPassant}
	p.RefreshOccupancy()
	if !p.Validate() {
		return nil, fmt.Errorf("boardmg: %w", ErrInconsistent)
	}
	p.moveList = GenerateMoves(p, side)
	return p, nil
}

// RefreshOccupancy recomputes the per-side occupancy, the combined occupancy
// and the empty-square set from the piece bitboards.
func (p *Position) RefreshOccupancy() {
	for c := White; c <= Black; c++ {
		p.occupancy[c] = p.PieceBitboard(c)
	}
	p.allOccupied = p.occupancy[White] | p.occupancy[Black]
	p.empty = ^p.allOccupied
}

// PieceBitboard returns the union of the six piece bitboards of side c,
// computed from the pieces rather than the cache.
func (p *Position) PieceBitboard(c Color) bb.Bitboard {
	var all bb.Bitboard
	for _, b := range p.pieces[c] {
		all |= b
	}
	return all
}

// ==========================
// Read access
// ==========================

// Pieces returns the bitboard of piece type pt for side c.
func (p *Position) Pieces(c Color, pt PieceType) bb.Bitboard { return p.pieces[c][pt] }

// Bitboards returns a copy of the per-piece bitboards for side c.
func (p *Position) Bitboards(c Color) Bitboards {
	s := &p.pieces[c]
	return Bitboards{
		Kings:   s[King],
		Queens:  s[Queen],
		Rooks:   s[Rook],
		Bishops: s[Bishop],
		Knights: s[Knight],
		Pawns:   s[Pawn],
		All:     p.occupancy[c],
	}
}

// Occupancy returns the cached occupancy of side c.
func (p *Position) Occupancy(c Color) bb.Bitboard { return p.occupancy[c] }

// AllOccupied returns the cached union of both sides.
func (p *Position) AllOccupied() bb.Bitboard { return p.allOccupied }

// Empty returns the cached set of empty squares.
func (p *Position) Empty() bb.Bitboard { return p.empty }

// EnPassantTarget returns the en-passant target bitboard (zero if none).
func (p *Position) EnPassantTarget() bb.Bitboard { return p.enPassant }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// MoveList returns a copy of the pseudo-legal moves for the side to move.
func (p *Position) MoveList() []Move { return slices.Clone(p.moveList) }

// PieceAt returns the owner and type of the piece on sq.
func (p *Position) PieceAt(sq bb.Square) (c Color, pt PieceType, ok bool) {
	bit := sq.Bit()
	for c = White; c <= Black; c++ {
		for pt = King; pt < NumPieceTypes; pt++ {
			if p.pieces[c][pt]&bit != 0 {
				return c, pt, true
			}
		}
	}
	return White, NumPieceTypes, false
}

// Validate checks that piece bitboards are disjoint, the occupancy caches
// agree with them and the en-passant target holds at most one square.
func (p *Position) Validate() bool {
	var seen bb.Bitboard
	for c := White; c <= Black; c++ {
		for _, b := range p.pieces[c] {
			if seen&b != 0 {
				return false
			}
			seen |= b
		}
		if p.occupancy[c] != p.PieceBitboard(c) {
			return false
		}
	}
	if p.allOccupied != seen || p.empty != ^seen {
		return false
	}
	return bb.PopulationCount(p.enPassant) <= 1
}

// ==========================
// Snapshots
// ==========================

// Snapshot is an explicit copy of the mutable part of a Position.
type Snapshot struct {
	pieces     [2][NumPieceTypes]bb.Bitboard
	enPassant  bb.Bitboard
	sideToMove Color
}

// Snapshot captures the current state for a later Restore.
func (p *Position) Snapshot() Snapshot {
	return Snapshot{pieces: p.pieces, enPassant: p.enPassant, sideToMove: p.sideToMove}
}

// Restore reinstates a snapshot, rebuilding caches and the move list.
func (p *Position) Restore(s Snapshot) {
	p.pieces = s.pieces
	p.enPassant = s.enPassant
	p.sideToMove = s.sideToMove
	p.RefreshOccupancy()
	p.moveList = GenerateMoves(p, p.sideToMove)
}
