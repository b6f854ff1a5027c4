// rabbits is a terminal shooting game: steer the hero, fire at the rabbits
// and clear the board before they get too fast.
//
// Usage:
//
//	rabbits list               - List available variants
//	rabbits play [variant]     - Play a variant (default: hunt)
//	rabbits scores [variant]   - Show high scores for a variant
//	rabbits serve              - Start SSH server for remote play
//	rabbits config [variant]   - Print the default config of a variant
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.rabbits/scores.db)
//	--log <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/rabbit-hunt/internal/games/rabbits"
	"github.com/vovakirdan/rabbit-hunt/internal/registry"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rabbits",
	Short: "Rabbit Hunt - shoot the rabbits in your terminal",
	Long: `Rabbit Hunt is a terminal shooting game. Steer the hero around the
field and fire at the rabbits. Every hit makes the rest a little faster.

Available commands:
  list     - Show all variants
  play     - Play a variant
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print a default config file

Examples:
  rabbits play
  rabbits play classic
  rabbits play --difficulty hard
  rabbits serve --ssh :2222
  rabbits scores hunt`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rabbits/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug events")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. The terminal UI owns stdout and
// stderr, so without --log the logger writes to fallback.
// The returned close func must be called when the command ends.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "rabbits",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// variantArg returns the variant named in args, or the default one.
func variantArg(args []string) (string, error) {
	variant := "hunt"
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return "", fmt.Errorf("unknown variant %q, run 'rabbits list' to see available variants", variant)
	}
	return variant, nil
}
