package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rabbit-hunt/internal/audio"
	"github.com/vovakirdan/rabbit-hunt/internal/config"
	"github.com/vovakirdan/rabbit-hunt/internal/core"
	"github.com/vovakirdan/rabbit-hunt/internal/games/rabbits"
	"github.com/vovakirdan/rabbit-hunt/internal/platform/tui"
	"github.com/vovakirdan/rabbit-hunt/internal/registry"
	"github.com/vovakirdan/rabbit-hunt/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (hunt when omitted).

Variants:
  hunt     - Speeds grow at score thresholds; hit ` + strconv.Itoa(config.DefaultHuntConfig().Difficulty.WinScore) + ` rabbits to win
  classic  - Fixed speeds, play as long as you like

Controls:
  Arrows/hjkl  - Move (x stops)
  Space        - Fire
  P/Esc        - Pause
  R            - Restart (after a win)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower rabbits and faster bullets
  normal - Config values unchanged
  hard   - Faster rabbits and slower bullets
  fixed  - No speed progression

Examples:
  rabbits play
  rabbits play classic
  rabbits play --difficulty hard
  rabbits play --config ./my-rabbits.toml
  rabbits play --sound --log rabbits.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runPlay(cmd *cobra.Command, args []string) {
	variant, err := variantArg(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rabbits.SetConfigPath(flagConfig)
	rabbits.SetDifficultyPreset(flagDifficulty)

	// Surface config errors before the screen switches
	if _, err := rabbits.LoadConfig(variant); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(variant)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
	}

	opts := tui.Options{Store: store, Logger: logger}

	var sound *audio.SoundManager
	if flagSound {
		sound = audio.NewSoundManager(flagVolume)
		if err := sound.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			opts.Sound = sound
		}
	}

	runErr := tui.Run(game, cfg, opts)

	// Release resources before potential exit
	if sound != nil {
		sound.Cleanup()
	}
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
