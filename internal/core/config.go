package core

// RuntimeConfig contains configuration passed to the game at (re)initialization.
type RuntimeConfig struct {
	ScreenW      int   // Screen width in characters
	ScreenH      int   // Screen height in characters
	TickRate     int   // View refresh rate per second
	Seed         int64 // RNG seed, 0 means time-based
	StrictStatus bool  // Reject moves outside playing status at the engine level
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
	}
}

// GameState is what the platform needs to know after each step.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game reached a terminal status
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step().
type StepResult struct {
	State GameState
	Moved bool // Whether this step changed the board
}
