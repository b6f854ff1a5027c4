package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rabbit-hunt/internal/platform/tui"
	"github.com/vovakirdan/rabbit-hunt/internal/registry"
	"github.com/vovakirdan/rabbit-hunt/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the high scores for the given variant (hunt when omitted).

On a terminal this opens the scoreboard; otherwise the top 10 are printed.

Examples:
  rabbits scores
  rabbits scores classic
  rabbits scores hunt > hunt.txt
  rabbits scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID, err := variantArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Scores for %s cleared.\n", gameID)
		return
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunScoreboard(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	if err := printScores(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
	}
}

// printScores writes the top 10 as plain text.
func printScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rabbits play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-6s  %s\n", "Rank", "Score", "Won", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-6s  %s\n", "----", "-----", "---", "----", "----")
	for i, entry := range scores {
		won := "-"
		if entry.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-6d  %-4s  %-6s  %s\n",
			i+1, entry.Score, won, tui.FormatTicks(entry.Ticks, flagFPS), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d\n", stats.GamesCount, stats.Wins, stats.HighScore)
	}
	return nil
}
