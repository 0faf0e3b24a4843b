// Package render draws positions for people: plain text diagrams and SVG
// boards. Square index i sits at row, col = i/8, i%8 with row 0 drawn at the
// bottom, so a1 is the bottom-left square.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	bb "chess-bitboard/bitboard"
	mg "chess-bitboard/boardmg"
)

// Board is the read-only view the renderers need.
type Board interface {
	PieceAt(sq bb.Square) (mg.Color, mg.PieceType, bool)
}

// DefaultSquareSize is the SVG square edge in pixels when Options leaves it unset.
const DefaultSquareSize = 60

const (
	lightFill    = "fill:#eeeed2"
	darkFill     = "fill:#769656"
	selectedFill = "fill:#f6f669"
	targetStyle  = "fill:#000000;fill-opacity:0.25"
)

// Options control SVG output.
type Options struct {
	SquareSize int
	// Selected is highlighted when valid; use bitboard.NoSquare for none.
	Selected bb.Square
	// Targets get a marker dot, typically the destinations of Selected.
	Targets bb.Bitboard
	Title   string
}

func (o Options) size() int {
	if o.SquareSize <= 0 {
		return DefaultSquareSize
	}
	return o.SquareSize
}

// SquareOrigin returns the top-left pixel of sq on a board of the given
// square size.
func SquareOrigin(sq bb.Square, size int) (x, y int) {
	row, col := int(sq)/8, int(sq)%8
	return col * size, (7 - row) * size
}

// SquareAt maps a pixel to the square under it. ok is false outside the board.
func SquareAt(x, y, size int) (sq bb.Square, ok bool) {
	if size <= 0 || x < 0 || y < 0 || x >= 8*size || y >= 8*size {
		return bb.NoSquare, false
	}
	col, row := x/size, 7-y/size
	return bb.Square(row*8 + col), true
}

// SVG writes an SVG image of b to w.
func SVG(w io.Writer, b Board, opts Options) {
	size := opts.size()
	canvas := svg.New(w)
	canvas.Start(8*size, 8*size)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	for sq := bb.Square(0); sq < 64; sq++ {
		x, y := SquareOrigin(sq, size)
		fill := darkFill
		if (sq.Rank()+sq.File())%2 == 1 {
			fill = lightFill
		}
		if opts.Selected.Valid() && sq == opts.Selected {
			fill = selectedFill
		}
		canvas.Rect(x, y, size, size, fill)
	}

	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:middle", size*2/3))
	for sq := bb.Square(0); sq < 64; sq++ {
		c, pt, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		x, y := SquareOrigin(sq, size)
		style := "fill:#ffffff;stroke:#000000"
		if c == mg.Black {
			style = "fill:#000000"
		}
		canvas.Text(x+size/2, y+size*3/4, string(pt.Letter(mg.White)), style)
	}
	canvas.Gend()

	for _, sq := range bb.Indices(opts.Targets) {
		x, y := SquareOrigin(sq, size)
		canvas.Circle(x+size/2, y+size/2, size/6, targetStyle)
	}
	canvas.End()
}

// Text returns an 8x8 diagram with rank 8 on top. Pieces use their letters,
// upper case for White; empty squares are dots.
func Text(b Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := bb.Square(rank*8 + file)
			ch := byte('.')
			if c, pt, ok := b.PieceAt(sq); ok {
				ch = pt.Letter(c)
			}
			sb.WriteByte(ch)
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// BitboardString prints a single bitboard as eight rows of 0/1, rank 8 first.
func BitboardString(b bb.Bitboard) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(bb.Square(rank*8 + file)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
