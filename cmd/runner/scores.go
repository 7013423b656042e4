package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-dash/internal/leaderboard"
	"github.com/vovakirdan/dino-dash/internal/platform/tui"
	"github.com/vovakirdan/dino-dash/internal/storage"
)

var errNoScores = errors.New("no scores recorded yet")

var (
	flagLimit       int
	flagStatsEmail  string
	flagPlain       bool
	flagResetScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores across all players.

The leaderboard opens as an interactive table. Use --plain to print it
instead, or --email to see one player's statistics.

Examples:
  runner scores
  runner scores --plain --limit 20
  runner scores --email ada@example.com
  runner scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagStatsEmail, "email", "", "Show statistics for the player with this email")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the leaderboard instead of opening the table")
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Delete every recorded score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch {
	case flagResetScores:
		err = store.ClearScores(ctx)
		if err == nil {
			fmt.Println("All scores deleted.")
		}
	case flagStatsEmail != "":
		err = printStats(ctx, store, flagStatsEmail)
	case flagPlain:
		err = printScores(ctx, store, flagLimit)
	default:
		err = tui.RunScoreboard(leaderboard.NewStoreService(store), flagLimit)
	}

	if errors.Is(err, errNoScores) {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(ctx context.Context, store *storage.Store, limit int) error {
	scores, err := store.TopScores(ctx, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	if len(scores) == 0 {
		return errNoScores
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-10d  %s\n", i+1, entry.PlayerName, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(ctx); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printStats(ctx context.Context, store *storage.Store, email string) error {
	stats, err := store.Stats(ctx, email)
	if err != nil {
		return err
	}
	if stats.GamesCount == 0 {
		return errNoScores
	}

	fmt.Printf("Player: %s\n\n", stats.Email)
	fmt.Printf("  Games played: %d\n", stats.GamesCount)
	fmt.Printf("  Best score:   %d\n", stats.HighScore)
	fmt.Printf("  Average:      %.1f\n", stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:  %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
