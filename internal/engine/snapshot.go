package engine

// MoveResult describes what a single move did.
type MoveResult struct {
	Direction Direction
	Changed   bool  // Whether any cell moved or merged
	Gained    int   // Score added by merges
	Merges    int   // Number of merges performed
	Spawned   *Tile // Tile spawned after the move, nil if none
	Status    Status
}

// Snapshot captures the complete engine state for persistence and replay checks.
type Snapshot struct {
	Board   Board
	Score   int
	Status  Status
	Moves   int
	MaxTile int
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:   e.board,
		Score:   e.score,
		Status:  e.status,
		Moves:   e.moves,
		MaxTile: e.board.MaxTile(),
	}
}
