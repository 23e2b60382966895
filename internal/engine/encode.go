package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode returns a compact one-line form of the board: cells separated by
// commas, rows by slashes, e.g. "2,0,0,0/0,0,0,0/0,0,4,0/0,0,0,0".
func (b Board) Encode() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(b[r][c]))
		}
	}
	return sb.String()
}

// ParseBoard decodes the form produced by Encode. Every cell must be 0 or a
// power of two no smaller than 2.
func ParseBoard(s string) (Board, error) {
	var b Board

	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Size {
		return b, fmt.Errorf("engine: board needs %d rows, got %d", Size, len(rows))
	}

	for r, row := range rows {
		cells := strings.Split(row, ",")
		if len(cells) != Size {
			return b, fmt.Errorf("engine: row %d needs %d cells, got %d", r, Size, len(cells))
		}
		for c, cell := range cells {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return b, fmt.Errorf("engine: cell (%d,%d): %w", r, c, err)
			}
			if !validTile(v) {
				return b, fmt.Errorf("engine: cell (%d,%d): %d is not a tile value", r, c, v)
			}
			b[r][c] = v
		}
	}

	return b, nil
}

func validTile(v int) bool {
	return v == 0 || (v >= 2 && v&(v-1) == 0)
}
