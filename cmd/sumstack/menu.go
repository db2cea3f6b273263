package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sumstack/internal/core"
	"github.com/vovakirdan/sumstack/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from the interactive menu",
	Long: `Start SumStack in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run. Leaving a run
(B/Esc while paused or after game over) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start the highlighted mode
  Tab          - High scores
  Q            - Quit

Examples:
  sumstack menu
  sumstack menu --fps 60
  sumstack menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()
	configureGames(logger)

	store := openStore()

	err := tui.RunSession(store, runtimeConfig(), flagPlayer, settings.Game.DefaultMode, logger)

	if store != nil {
		store.Close()
	}

	if err != nil {
		logger.Error("session failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen to the terminal and applies the settings.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.Game.TickRate,
		Seed:     flagSeed,
	}
}
