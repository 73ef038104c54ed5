package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-toybox/internal/platform/tui"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game (default: amidar).

Examples:
  toybox scores
  toybox scores amidar --tui
  toybox scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := gameArg(args)
	title := createSim(gameID).Title()

	store := openStore()
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fatal("running scoreboard: %v", err)
		}
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fatal("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'toybox play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %s\n", "Rank", "Score", "Level", "Seed", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %-10d  %s\n", i+1, entry.Score, entry.Level, entry.Seed, dateStr)
	}

	fmt.Println()
	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Avg: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}
