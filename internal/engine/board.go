package engine

import (
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// WinTile is the tile value that wins the game.
const WinTile = 2048

// Board is a Size x Size grid of tile values indexed [row][col].
// Zero marks an empty cell. Board is a value type: assigning it copies every cell.
type Board [Size][Size]int

// Line is one row or column in traversal order.
type Line [Size]int

// Pos addresses a single cell.
type Pos struct {
	Row int
	Col int
}

// Tile is a value placed at a position.
type Tile struct {
	Pos
	Value int
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b Board) EmptyCells() []Pos {
	var cells []Pos
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two horizontally or vertically
// adjacent cells hold the same value.
func (b Board) HasPossibleMerge() bool {
	for r := range Size {
		for c := range Size {
			val := b[r][c]
			// Right neighbor
			if c < Size-1 && b[r][c+1] == val {
				return true
			}
			// Bottom neighbor
			if r < Size-1 && b[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// Contains returns true if any cell holds value.
func (b Board) Contains(value int) bool {
	for r := range Size {
		for c := range Size {
			if b[r][c] == value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] > maxVal {
				maxVal = b[r][c]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += b[r][c]
		}
	}
	return total
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	return Size*Size - len(b.EmptyCells())
}

// IsEmpty reports whether every cell is empty.
func (b Board) IsEmpty() bool {
	return b == Board{}
}

// line extracts the i-th line for dir, oriented so that index 0 is the
// cell tiles slide toward.
func (b Board) line(dir Direction, i int) Line {
	var l Line
	for k := range Size {
		switch dir {
		case DirLeft:
			l[k] = b[i][k]
		case DirRight:
			l[k] = b[i][Size-1-k]
		case DirUp:
			l[k] = b[k][i]
		case DirDown:
			l[k] = b[Size-1-k][i]
		}
	}
	return l
}

// setLine writes l back as the i-th line for dir. Inverse of line.
func (b *Board) setLine(dir Direction, i int, l Line) {
	for k := range Size {
		switch dir {
		case DirLeft:
			b[i][k] = l[k]
		case DirRight:
			b[i][Size-1-k] = l[k]
		case DirUp:
			b[k][i] = l[k]
		case DirDown:
			b[Size-1-k][i] = l[k]
		}
	}
}

// String renders the board as right-aligned columns, one row per line.
func (b Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if b[r][c] != 0 {
				cell = strconv.Itoa(b[r][c])
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
