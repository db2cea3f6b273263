package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	for _, key := range []string{EnvDBPath, EnvLogLevel, EnvSSHAddr, EnvSSHPort, EnvTickRate} {
		t.Setenv(key, "")
	}
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, "0.0.0.0:23234", Default().SSH.Addr())
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "custom.yaml")
	writeFile(t, path, "game:\n  tick_rate: 60\n  theme: mono\nssh:\n  idle_timeout: 90s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Game.TickRate)
	assert.Equal(t, "mono", cfg.Game.Theme)
	assert.Equal(t, 90*time.Second, cfg.SSH.IdleTimeout)
	// Untouched keys keep their defaults
	assert.Equal(t, "classic", cfg.Game.DefaultMode)
	assert.Equal(t, Default().Storage, cfg.Storage)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	_, err := Load(filepath.Join(work, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "game: [not, a, map")
	_, err = Load(bad)
	require.Error(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "sumstack.yaml"), "game:\n  default_mode: timed\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "timed", cfg.Game.DefaultMode)

	// The user config wins over the local one
	writeFile(t, filepath.Join(home, ".sumstack", "config.yaml"), "game:\n  tick_rate: 20\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Game.TickRate)
	assert.Equal(t, "classic", cfg.Game.DefaultMode)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSSHAddr, "127.0.0.1")
	t.Setenv(EnvSSHPort, "2222")
	t.Setenv(EnvTickRate, "15")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:2222", cfg.SSH.Addr())
	assert.Equal(t, 15, cfg.Game.TickRate)
}

func TestLoadReadsDotEnv(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ".env"), EnvTickRate+"=45\n")
	t.Cleanup(func() { os.Unsetenv(EnvTickRate) })
	// godotenv never overrides variables that are already set
	os.Unsetenv(EnvTickRate)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Game.TickRate)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTickRate, "fast")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTickRate)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Game.TickRate = 0
	cfg.Game.DefaultMode = "zen"
	cfg.Game.Theme = "neon"
	cfg.Log.Level = "loud"
	cfg.SSH.Port = 70000

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"tick_rate", "default_mode", "theme", "log.level", "ssh.port"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".sumstack", "x.log"), ExpandHome("~/.sumstack/x.log"))
	assert.Equal(t, "/var/log/x.log", ExpandHome("/var/log/x.log"))
	assert.Equal(t, "", ExpandHome(""))
}
