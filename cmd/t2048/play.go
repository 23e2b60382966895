package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var flagBoard string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game of 2048",
	Long: `Start a game of 2048 directly, without the menu.

Controls:
  Arrows/WASD/hjkl - Move tiles
  Enter/Space      - Start (and restart after game over)
  R                - Restart
  P                - Pause
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

The score and a replayable game record are saved when the game ends.

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --strict
  t2048 play --board "1024,1024,0,0/0,0,0,0/0,0,0,0/0,0,0,0"`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoard, "board", "", `Initial board, rows separated by "/" and cells by ","`)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []game.Option
	if flagBoard != "" {
		board, err := engine.ParseBoard(flagBoard)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithInitialBoard(board))
	}

	store := openStore(cfg)
	defer closeStore(store)

	if store != nil {
		if best, err := store.HighScore(game.ID); err == nil {
			opts = append(opts, game.WithBest(best))
		}
	}

	g := game.New(runtimeConfig(cfg), opts...)
	snap, err := tui.Run(g, store, runtimeConfig(cfg))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if snap.Status != engine.StatusIdle {
		fmt.Printf("Score: %d  Max tile: %d  Moves: %d  (%s)\n", snap.Score, snap.MaxTile, snap.Moves, snap.Status)
		fmt.Println("Replay: " + replayCommand(g))
	}
	return nil
}

// replayCommand returns the command line that reproduces g.
func replayCommand(g *game.Game) string {
	cmd := fmt.Sprintf("t2048 replay --seed %d --moves %s", g.Seed(), g.History())
	if initial := g.Initial(); !initial.IsEmpty() {
		cmd += fmt.Sprintf(" --board %q", initial.Encode())
	}
	return cmd
}
