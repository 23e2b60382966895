// Package game adapts the 2048 engine to the interactive platform: it maps
// input actions to engine commands, gates moves on the playing status and
// renders the board into a core.Screen.
package game

import (
	"time"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
)

const (
	// ID identifies the game in score storage.
	ID = "2048"

	// Minimum terminal size: board (29x9) plus HUD and help bar.
	minScreenW = 31
	minScreenH = 15
)

// Game wraps a single engine with presentation state.
type Game struct {
	eng     *engine.Engine
	initial engine.Board
	seed    int64
	history History

	best     int
	last     *engine.MoveResult
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
}

// Option configures a Game.
type Option func(*Game)

// WithInitialBoard seeds every start and restart with b.
func WithInitialBoard(b engine.Board) Option {
	return func(g *Game) {
		g.initial = b
	}
}

// WithBest sets the best score shown in the HUD.
func WithBest(best int) Option {
	return func(g *Game) {
		g.best = best
	}
}

// New creates an idle game ready for Start.
func New(cfg core.RuntimeConfig, opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(cfg)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Reset builds a fresh idle engine. A zero cfg.Seed picks a time-based seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}

	opts := []engine.Option{
		engine.WithSeed(g.seed),
		engine.WithInitialState(g.initial),
	}
	if cfg.StrictStatus {
		opts = append(opts, engine.WithStrictStatus())
	}

	g.eng = engine.New(opts...)
	g.history = nil
	g.last = nil
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step applies one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.eng.Status()

	if in.Has(core.ActionPause) && status == engine.StatusPlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionConfirm):
		if status == engine.StatusIdle {
			g.start()
		} else if status.Terminal() {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionRestart):
		if status == engine.StatusIdle {
			g.start()
		} else {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	// Moves are only accepted while playing.
	if status != engine.StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	res, err := g.eng.Move(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	g.history = append(g.history, tokenFor(dir))
	g.last = &res
	if score := g.eng.Score(); score > g.best {
		g.best = score
	}

	return core.StepResult{State: g.State(), Moved: res.Changed}
}

func (g *Game) start() {
	g.eng.Start()
	g.history = append(g.history, TokenStart)
	g.last = nil
}

func (g *Game) restart() {
	g.eng.Restart()
	g.history = append(g.history, TokenRestart)
	g.last = nil
	g.paused = false
}

// directionFor picks the move direction from a frame. The first match wins
// when several are set.
func directionFor(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.Status().Terminal(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Status returns the engine status.
func (g *Game) Status() engine.Status {
	return g.eng.Status()
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// Seed returns the seed the current engine was built with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Initial returns the board every start and restart begins from.
func (g *Game) Initial() engine.Board {
	return g.eng.Initial()
}

// History returns the commands applied since the last Reset.
func (g *Game) History() History {
	return append(History(nil), g.history...)
}

// Best returns the best score known to this game.
func (g *Game) Best() int {
	return g.best
}

// SetBest updates the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	if best > g.best {
		g.best = best
	}
}

// LastMove returns the result of the most recent move, or nil.
func (g *Game) LastMove() *engine.MoveResult {
	return g.last
}
