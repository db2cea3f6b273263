// sumstack is a terminal number-matching puzzle: pick tiles that add up to
// the target before the stack reaches the top.
//
// Usage:
//
//	sumstack                   - Start the menu (same as "sumstack menu")
//	sumstack list              - List available modes
//	sumstack play <mode>       - Play a mode directly
//	sumstack menu              - Pick a mode interactively
//	sumstack serve             - Start SSH server for remote play
//	sumstack scores <mode>     - Show high scores for a mode
//	sumstack config            - Print the effective settings
//
// Global flags:
//
//	--config <path>    - Settings file (default search: ~/.sumstack/config.yaml, ./configs/sumstack.yaml)
//	--fps <rate>       - Override the tick rate
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Override the database path
//	--log-level <lvl>  - Override the log level
//	--player <name>    - Name stored with local scores
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sumstack/internal/config"
	"github.com/vovakirdan/sumstack/internal/engine"
	"github.com/vovakirdan/sumstack/internal/games/sumstack"
	"github.com/vovakirdan/sumstack/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagPlayer   string

	// settings is filled by loadSettings before any subcommand runs.
	settings config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sumstack",
	Short: "SumStack - match tiles to the target sum in your terminal",
	Long: `SumStack is a number-matching puzzle for the terminal.

Select tiles whose values add up to the target. Every match clears the
tiles and draws a new target. New rows push in from the bottom: after
each match in Classic mode, every 10 seconds in Timed mode. When a row
arrives while the top row is occupied, the run is over.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker (default)
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective settings

Examples:
  sumstack
  sumstack play timed
  sumstack play classic --seed 42
  sumstack serve
  sumstack scores classic`,
	PersistentPreRunE: loadSettings,
	Run:               runMenu,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global persistent flags. Zero values keep the configured setting.
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name stored with local scores")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings reads the settings file, then lets flags override it.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	settings = cfg
	return nil
}

// openStore opens the leaderboard. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// configureGames hands the logger and theme to every registered mode.
func configureGames(logger *log.Logger) {
	sumstack.Configure(sumstack.Options{
		Logger: logger,
		Theme:  sumstack.Theme(settings.Game.Theme),
	})
}

// requireMode exits with a hint when the mode is not registered.
func requireMode(id string) engine.Mode {
	mode, err := engine.ParseMode(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'sumstack list' to see available modes.")
		os.Exit(1)
	}
	return mode
}
