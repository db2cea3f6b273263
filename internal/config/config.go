// Package config loads the SumStack platform settings from YAML, with
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sumstack/internal/engine"
)

// Config contains all platform settings.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// GameConfig controls the play loop.
type GameConfig struct {
	TickRate    int    `yaml:"tick_rate"`    // Simulation ticks per second
	DefaultMode string `yaml:"default_mode"` // Mode highlighted in the menu
	Theme       string `yaml:"theme"`        // "color" or "mono"
}

// StorageConfig locates the leaderboard database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used while a full-screen UI owns the terminal
}

// SSHConfig controls the SSH server.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// Addr returns host:port for the SSH listener.
func (c SSHConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Themes accepted by GameConfig.Theme.
var Themes = []string{"color", "mono"}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error

	if c.Game.TickRate <= 0 || c.Game.TickRate > 240 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be in 1..240, got %d", c.Game.TickRate))
	}
	if _, err := engine.ParseMode(c.Game.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("game.default_mode: %w", err))
	}
	if !validTheme(c.Game.Theme) {
		errs = append(errs, fmt.Errorf("game.theme must be one of %v, got %q", Themes, c.Game.Theme))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is empty"))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.SSH.Port <= 0 || c.SSH.Port > 65535 {
		errs = append(errs, fmt.Errorf("ssh.port must be in 1..65535, got %d", c.SSH.Port))
	}
	if c.SSH.IdleTimeout < 0 || c.SSH.MaxTimeout < 0 {
		errs = append(errs, errors.New("ssh timeouts must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func validTheme(t string) bool {
	for _, name := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
