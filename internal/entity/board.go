package entity

// Symbol is a mark placed on the board. The zero value is an empty cell.
type Symbol string

const (
	Empty Symbol = ""
	X     Symbol = "x"
	O     Symbol = "o"
)

const Size = 3

// IsMark reports whether the symbol is one of the two playable marks.
func (that Symbol) IsMark() bool {
	return that == X || that == O
}

// Opponent returns the complementary mark, or Empty for anything else.
func (that Symbol) Opponent() Symbol {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Line is an ordered triple of cells forming a row, column or diagonal.
type Line [Size]Cell

// WinLines lists every line in evaluation order: rows, columns, main diagonal, anti diagonal.
var WinLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid, row-major.
type Board [Size][Size]Symbol

func (that *Board) At(cell Cell) Symbol {
	return that[cell.Row][cell.Col]
}

// Place writes symbol into an empty in-bounds cell and reports whether it did.
func (that *Board) Place(cell Cell, symbol Symbol) bool {
	if !cell.InBounds() || !symbol.IsMark() || that.At(cell) != Empty {
		return false
	}

	that[cell.Row][cell.Col] = symbol

	return true
}

// EmptyCells returns the free cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if that[row][col] == Empty {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, symbol := range row {
			if symbol == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty() bool {
	for _, row := range that {
		for _, symbol := range row {
			if symbol != Empty {
				return false
			}
		}
	}

	return true
}
