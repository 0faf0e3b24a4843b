// Package bitboard holds the primitive 64-bit square-set operations the move
// generator is built on. Bit i of a Bitboard is square i; square 0 is a1,
// square 7 is h1 and square 63 is h8.
package bitboard

import "math/bits"

// Bitboard is a set of squares, one bit per square.
type Bitboard uint64

// Square is a board index in [0, 63]: rank = sq / 8, file = sq % 8.
type Square int

const NoSquare Square = -1

// Shift offsets in squares. Positive values shift left, negative right.
const (
	North     = 8
	South     = -8
	East      = 1
	West      = -1
	NorthEast = North + East
	NorthWest = North + West
	SouthEast = South + East
	SouthWest = South + West
)

// File and rank masks.
const (
	Empty Bitboard = 0
	Full  Bitboard = ^Empty

	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7

	NotFileA = ^FileA
	NotFileH = ^FileH

	Rank1 Bitboard = 0xFF
	Rank2          = Rank1 << (8 * 1)
	Rank3          = Rank1 << (8 * 2)
	Rank4          = Rank1 << (8 * 3)
	Rank5          = Rank1 << (8 * 4)
	Rank6          = Rank1 << (8 * 5)
	Rank7          = Rank1 << (8 * 6)
	Rank8          = Rank1 << (8 * 7)

	// BackRanks are the promotion ranks of both sides (index <= 7 or >= 56).
	BackRanks = Rank1 | Rank8
)

// ==========================
// Squares
// ==========================

// Bit returns the single-bit bitboard for sq.
func (sq Square) Bit() Bitboard { return Bitboard(1) << uint(sq) }

// Rank returns the rank index (0 = first rank).
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns the file index (0 = A file).
func (sq Square) File() int { return int(sq) % 8 }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// String renders the square in algebraic form, e.g. 12 -> "e2".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ==========================
// Bit operations
// ==========================

// Shift moves every bit by dir squares. Bits pushed past either end of the
// board are dropped; nothing wraps around.
func Shift(bb Bitboard, dir int) Bitboard {
	if dir >= 0 {
		return bb << uint(dir)
	}
	return bb >> uint(-dir)
}

// VerticalFlip mirrors the board across the horizontal axis so rank 1 and
// rank 8 trade places.
func VerticalFlip(bb Bitboard) Bitboard {
	return (bb << 56) |
		((bb << 40) & 0x00ff000000000000) |
		((bb << 24) & 0x0000ff0000000000) |
		((bb << 8) & 0x000000ff00000000) |
		((bb >> 8) & 0x00000000ff000000) |
		((bb >> 24) & 0x0000000000ff0000) |
		((bb >> 40) & 0x000000000000ff00) |
		(bb >> 56)
}

// IsolateLowestSetBit keeps only the least significant set bit.
func IsolateLowestSetBit(bb Bitboard) Bitboard { return bb & -bb }

// ClearLowestSetBit drops the least significant set bit.
func ClearLowestSetBit(bb Bitboard) Bitboard { return bb & (bb - 1) }

// PopulationCount returns the number of set bits.
func PopulationCount(bb Bitboard) int {
	count := 0
	for bb != 0 {
		count++
		bb = ClearLowestSetBit(bb)
	}
	return count
}

const debruijn64 = 0x03f79d71b4cb0a89

var index64 = [64]Square{
	0, 47, 1, 56, 48, 27, 2, 60,
	57, 49, 41, 37, 28, 16, 3, 61,
	54, 58, 35, 52, 50, 42, 21, 44,
	38, 32, 29, 23, 17, 11, 4, 62,
	46, 55, 26, 59, 40, 36, 15, 53,
	34, 51, 20, 43, 31, 22, 10, 45,
	25, 39, 14, 33, 19, 30, 9, 24,
	13, 18, 8, 12, 7, 6, 5, 63,
}

// BitScanForward returns the index of the least significant set bit.
// It panics on an empty bitboard.
func BitScanForward(bb Bitboard) Square {
	if bb == 0 {
		panic("bitboard.BitScanForward: empty bitboard")
	}
	return index64[(uint64(bb^(bb-1))*debruijn64)>>58]
}

// Indices returns the set squares in ascending order.
func Indices(bb Bitboard) []Square {
	indices := make([]Square, 0, bits.OnesCount64(uint64(bb)))
	for bb != 0 {
		indices = append(indices, BitScanForward(bb))
		bb = ClearLowestSetBit(bb)
	}
	return indices
}

// ==========================
// Convenience
// ==========================

// Has reports whether sq is set.
func (bb Bitboard) Has(sq Square) bool { return bb&sq.Bit() != 0 }

// Count is PopulationCount as a method.
func (bb Bitboard) Count() int { return PopulationCount(bb) }

// Squares is Indices as a method.
func (bb Bitboard) Squares() []Square { return Indices(bb) }
