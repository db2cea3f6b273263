package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sumstack.yaml
var defaultYAML []byte

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate:    30,
			DefaultMode: "classic",
			Theme:       "color",
		},
		Storage: StorageConfig{
			DBPath: "~/.sumstack/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.sumstack/sumstack.log",
		},
		SSH: SSHConfig{
			Host:        "0.0.0.0",
			Port:        23234,
			HostKeyPath: ".ssh/sumstack_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  2 * time.Hour,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
