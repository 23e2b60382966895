package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagMoves    string
	flagGameID   string
	flagInitial  string
	flagRenderUI bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded game",
	Long: `Re-run a game from its seed and command history and print the final board.

A history is a string of commands: S (start), N (restart), and the moves
U, D, L, R. Case, spaces and commas are ignored. A history that does not
begin with S or N starts the game implicitly.

Recorded games can be replayed by ID (see 't2048 scores --games').

Examples:
  t2048 replay --seed 42 --moves SLLURD
  t2048 replay --seed 7 --moves "l,l,u,r" --board "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0"
  t2048 replay --id 1f0e4c52-...`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagMoves, "moves", "", "Command history to replay")
	replayCmd.Flags().StringVar(&flagGameID, "id", "", "Replay a recorded game by ID")
	replayCmd.Flags().StringVar(&flagInitial, "board", "", "Initial board for --moves")
	replayCmd.Flags().BoolVar(&flagRenderUI, "render", false, "Print the game screen instead of the bare board")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	seed, initial, history, err := replayInput(cmd)
	if err != nil {
		return err
	}

	snap := game.Replay(seed, initial, history)

	if flagRenderUI {
		g := game.ReplayGame(seed, core.DefaultConfig(), initial, history)
		scr := core.NewScreen(core.DefaultConfig().ScreenW, 14)
		g.Render(scr)
		fmt.Println(scr.String())
	} else {
		fmt.Println(snap.Board)
	}
	fmt.Println()
	fmt.Printf("Score: %d  Max tile: %d  Moves: %d  Status: %s\n", snap.Score, snap.MaxTile, snap.Moves, snap.Status)
	return nil
}

// replayInput resolves the seed, initial board and history from either a
// stored game or the --seed/--moves/--board flags.
func replayInput(cmd *cobra.Command) (int64, engine.Board, game.History, error) {
	var initial engine.Board

	if flagGameID != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return 0, initial, nil, err
		}
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			return 0, initial, nil, err
		}
		defer closeStore(store)

		rec, err := store.GameByID(flagGameID)
		if err != nil {
			return 0, initial, nil, err
		}
		if rec == nil {
			return 0, initial, nil, fmt.Errorf("no game with id %s", flagGameID)
		}
		history, err := game.ParseHistory(rec.History)
		if err != nil {
			return 0, initial, nil, err
		}
		if rec.Initial != "" {
			if initial, err = engine.ParseBoard(rec.Initial); err != nil {
				return 0, initial, nil, fmt.Errorf("game %s: %w", rec.ID, err)
			}
		}
		return rec.Seed, initial, history, nil
	}

	if !cmd.Flags().Changed("seed") {
		return 0, initial, nil, errors.New("replay needs --seed with --moves, or --id")
	}

	history, err := game.ParseHistory(flagMoves)
	if err != nil {
		return 0, initial, nil, err
	}
	if flagInitial != "" {
		if initial, err = engine.ParseBoard(flagInitial); err != nil {
			return 0, initial, nil, err
		}
	}
	return flagSeed, initial, history, nil
}
