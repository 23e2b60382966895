// Package engine implements the rules of the 2048 sliding-tile puzzle:
// move resolution, tile spawning, scoring and win/lose detection.
//
// The engine is pure in-memory logic with no I/O and is not safe for
// concurrent use; callers serialize access to a single Engine.
package engine

import (
	"errors"
	"math/rand"
	"time"
)

// spawnFourProbability is the chance that a spawned tile is a 4 instead of a 2.
const spawnFourProbability = 0.1

// ErrNotPlaying is returned by moves on a strict engine whose status is not playing.
var ErrNotPlaying = errors.New("engine: game is not in playing status")

// Engine owns the board, score and status of one game.
type Engine struct {
	initial Board
	board   Board
	score   int
	status  Status
	moves   int

	rng    *rand.Rand
	strict bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithInitialState seeds the board. The board is copied, so later changes
// to the caller's value do not affect the engine.
func WithInitialState(b Board) Option {
	return func(e *Engine) {
		e.initial = b
	}
}

// WithRand sets the random source used for tile spawning.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a private random source for tile spawning.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithStrictStatus makes moves fail with ErrNotPlaying unless the game is playing.
// By default moves run in any status and gating is left to the caller.
func WithStrictStatus() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New creates an idle engine. No tiles are spawned until Start or Restart.
func New(opts ...Option) *Engine {
	e := &Engine{
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.board = e.initial
	return e
}

// Start begins play: the board is reset to the initial state and two tiles
// are spawned. The score is left as is.
func (e *Engine) Start() {
	e.status = StatusPlaying
	e.board = e.initial
	e.moves = 0
	e.spawnTile()
	e.spawnTile()
}

// Restart resets the score to zero and starts a fresh game.
func (e *Engine) Restart() {
	e.score = 0
	e.Start()
}

// MoveLeft slides all tiles left.
func (e *Engine) MoveLeft() (MoveResult, error) {
	return e.Move(DirLeft)
}

// MoveRight slides all tiles right.
func (e *Engine) MoveRight() (MoveResult, error) {
	return e.Move(DirRight)
}

// MoveUp slides all tiles up.
func (e *Engine) MoveUp() (MoveResult, error) {
	return e.Move(DirUp)
}

// MoveDown slides all tiles down.
func (e *Engine) MoveDown() (MoveResult, error) {
	return e.Move(DirDown)
}

// Move resolves one move in the given direction.
//
// Every line is merged toward dir. If any cell changed, exactly one tile is
// spawned. The status is recomputed afterwards whether or not the board moved.
func (e *Engine) Move(dir Direction) (MoveResult, error) {
	result := MoveResult{Direction: dir}

	if !dir.Valid() {
		result.Status = e.status
		return result, nil
	}

	if e.strict && e.status != StatusPlaying {
		result.Status = e.status
		return result, ErrNotPlaying
	}

	before := e.board
	for i := range Size {
		merged, score, merges := mergeLine(e.board.line(dir, i))
		e.board.setLine(dir, i, merged)
		result.Gained += score
		result.Merges += merges
	}
	e.score += result.Gained

	if e.board != before {
		result.Changed = true
		e.moves++
		if tile, ok := e.spawnTile(); ok {
			result.Spawned = &tile
		}
	}

	e.status = nextStatus(e.status, e.board)
	result.Status = e.status
	return result, nil
}

// spawnTile places a 2 (90%) or 4 (10%) in a random empty cell.
// Reports false when the board is full.
func (e *Engine) spawnTile() (Tile, bool) {
	empty := e.board.EmptyCells()
	if len(empty) == 0 {
		return Tile{}, false
	}

	pos := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < spawnFourProbability {
		value = 4
	}

	e.board[pos.Row][pos.Col] = value
	return Tile{Pos: pos, Value: value}, true
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// State returns a copy of the current board.
func (e *Engine) State() Board {
	return e.board
}

// Status returns the current game status.
func (e *Engine) Status() Status {
	return e.status
}

// Initial returns a copy of the initial board.
func (e *Engine) Initial() Board {
	return e.initial
}

// Moves returns the number of moves that changed the board since the last start.
func (e *Engine) Moves() int {
	return e.moves
}

// MaxTile returns the highest tile on the board.
func (e *Engine) MaxTile() int {
	return e.board.MaxTile()
}

// Strict reports whether moves are rejected outside playing status.
func (e *Engine) Strict() bool {
	return e.strict
}
