package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagLimit int
	flagGames bool
	flagClear bool
	flagTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent games",
	Long: `Display the top high scores, or the most recent games with --games.

Examples:
  t2048 scores
  t2048 scores --limit 20
  t2048 scores --games
  t2048 scores --tui
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagGames, "games", false, "Show recent games instead of top scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and game records")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse scores in the interactive scoreboard")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	switch {
	case flagClear:
		if err := store.ClearScores(game.ID); err != nil {
			return err
		}
		if err := store.ClearGames(); err != nil {
			return err
		}
		fmt.Println("Scores and game records cleared.")
		return nil
	case flagTUI:
		rc := runtimeConfig(cfg)
		_, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
		return err
	case flagGames:
		return printGames(store)
	default:
		return printScores(store)
	}
}

func printScores(store *storage.Store) error {
	scores, err := store.TopScores(game.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Won: %d  Best tile: %d\n", scores[0].Score, stats.GamesCount, stats.Wins, stats.BestTile)
	return nil
}

func printGames(store *storage.Store) error {
	games, err := store.RecentGames(flagLimit)
	if err != nil {
		return err
	}

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tTILE\tMOVES\tSTATUS\tSEED\tDATE")
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\t%s\n",
			g.ID, g.Score, g.MaxTile, g.Moves, g.Status, g.Seed, g.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
