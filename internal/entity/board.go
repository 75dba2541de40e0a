package entity

import "fmt"

// Cell is the occupancy of a single board position.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

const (
	BoardRows = 3
	BoardCols = 3
	BoardSize = BoardRows * BoardCols
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Board is a row-major 3x3 grid, index = row*3 + col.
// It is a value type: With returns a new board and leaves the receiver untouched.
type Board [BoardSize]Cell

func (that Board) With(index int, cell Cell) Board {
	that[index] = cell
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) Filled() int {
	filled := 0
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

func IsValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}

// Location is the 1-based (column, row) of a played cell. The zero value means "no move".
type Location struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func LocationOf(index int) Location {
	return Location{
		Col: index%BoardCols + 1,
		Row: index/BoardCols + 1,
	}
}

func (that Location) IsZero() bool {
	return that.Col == 0 && that.Row == 0
}

func (that Location) String() string {
	if that.IsZero() {
		return ""
	}

	return fmt.Sprintf("(%d,%d)", that.Col, that.Row)
}
