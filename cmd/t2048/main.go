// t2048 is the 2048 sliding tile game for the terminal.
//
// Usage:
//
//	t2048                    - Start menu (play, scores)
//	t2048 play               - Play a game directly
//	t2048 scores             - Show high scores and recent games
//	t2048 replay             - Replay a recorded game from its seed
//	t2048 serve              - Start SSH server for remote play
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Config file (default search: ~/.t2048/config.yaml, ./configs/t2048.yaml)
//	--seed <value>  - Set RNG seed for reproducible games
//	--strict        - Reject moves outside playing status in the engine
//	--db <path>     - Set database path (default: ~/.t2048/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagSeed   int64
	flagStrict bool
	flagDBPath string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "t2048",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding tile game for the terminal.

Slide the tiles with the arrow keys, WASD or hjkl. Equal tiles merge
into their sum; reach a 2048 tile to win.

Available commands:
  play     - Play a game directly
  scores   - View high scores and recent games
  replay   - Replay a recorded game
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Without a command, t2048 starts the interactive menu.

Examples:
  t2048
  t2048 play --seed 42
  t2048 serve --ssh :2222
  t2048 replay --seed 42 --moves SLLURD`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "View refresh rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Reject moves outside playing status")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.UI.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("strict") {
		cfg.Game.StrictStatus = flagStrict
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtimeConfig builds the game runtime config for the current terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.UI.TickRate
	rc.Seed = cfg.Game.Seed
	rc.StrictStatus = cfg.Game.StrictStatus
	return rc
}

// openStore opens the scores database. Games still work without it, so a
// failure is only logged.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	defer closeStore(store)

	if err := tui.RunSession(store, runtimeConfig(cfg)); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
