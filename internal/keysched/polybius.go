package keysched

import (
	"strings"

	"github.com/cipherloom-go/internal/alphabet"
)

// SquareSize is the side of a Polybius square
const SquareSize = 5

// MergedLetter is folded into MergeTarget so 25 letters fill the square
const (
	MergedLetter = 9 // j
	MergeTarget  = 8 // i
)

// Cell is a row/column position in a PolybiusSquare
type Cell struct {
	Row, Col int
}

// PolybiusSquare is a 5x5 arrangement of the alphabet without j
type PolybiusSquare struct {
	cells [SquareSize * SquareSize]int
	where [alphabet.Size]Cell
}

// FoldLetter maps j onto i and leaves every other index alone
func FoldLetter(index int) int {
	if index == MergedLetter {
		return MergeTarget
	}
	return index
}

// BuildPolybiusSquare fills the square with the distinct letters of key, j
// read as i, followed by the rest of the alphabet in order. An empty key
// yields the plain alphabetical square.
func BuildPolybiusSquare(key string) *PolybiusSquare {
	sq := &PolybiusSquare{}
	var seen [alphabet.Size]bool
	seen[MergedLetter] = true

	n := 0
	add := func(idx int) {
		idx = FoldLetter(idx)
		if seen[idx] {
			return
		}
		seen[idx] = true
		sq.cells[n] = idx
		sq.where[idx] = Cell{Row: n / SquareSize, Col: n % SquareSize}
		n++
	}

	for _, idx := range alphabet.Encode(key) {
		add(idx)
	}
	for idx := 0; idx < alphabet.Size; idx++ {
		add(idx)
	}
	sq.where[MergedLetter] = sq.where[MergeTarget]
	return sq
}

// Locate returns the cell holding letter index (j resolves to i)
func (s *PolybiusSquare) Locate(index int) Cell {
	return s.where[index]
}

// At returns the letter index at row, col, both wrapped into the square
func (s *PolybiusSquare) At(row, col int) int {
	return s.cells[alphabet.Mod(row, SquareSize)*SquareSize+alphabet.Mod(col, SquareSize)]
}

// String renders the square one row per line
func (s *PolybiusSquare) String() string {
	var b strings.Builder
	for r := 0; r < SquareSize; r++ {
		for c := 0; c < SquareSize; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(alphabet.IndexToLetter(s.cells[r*SquareSize+c], false))
		}
		if r < SquareSize-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
