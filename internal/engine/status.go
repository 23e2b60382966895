package engine

// Status is the lifecycle state of a game.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusWin     Status = "win"
	StatusLose    Status = "lose"
)

// Terminal reports whether s is win or lose.
func (s Status) Terminal() bool {
	return s == StatusWin || s == StatusLose
}

// nextStatus recomputes the status after a move.
// A win tile takes precedence. While a move is still possible the current
// status is kept as is, which makes win absorbing and leaves idle untouched.
func nextStatus(current Status, b Board) Status {
	if b.Contains(WinTile) {
		return StatusWin
	}
	if b.HasEmptyCell() || b.HasPossibleMerge() {
		return current
	}
	return StatusLose
}
