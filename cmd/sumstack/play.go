package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sumstack/internal/platform/tui"
	"github.com/vovakirdan/sumstack/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start a run of the given mode right away.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select or deselect the tile (mouse click works too)
  P            - Pause
  R            - Restart
  B/Esc        - Leave (while paused or after game over)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Examples:
  sumstack play classic
  sumstack play timed --seed 42
  sumstack play timed --fps 60`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := requireMode(args[0])

	logger, closeLog := newLogger(true)
	defer closeLog()
	configureGames(logger)

	game, err := registry.Create(string(mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), flagPlayer, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("run failed", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
