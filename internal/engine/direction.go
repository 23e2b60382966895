package engine

import "strings"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter code used by move sequences (U, D, L, R),
// or 0 for an invalid direction.
func (d Direction) Letter() byte {
	if !d.Valid() {
		return 0
	}
	return strings.ToUpper(d.String())[0]
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}
