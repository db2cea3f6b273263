package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sumstack/internal/config"
	"github.com/vovakirdan/sumstack/internal/platform/tui"
)

var (
	flagSSHHost string
	flagSSHPort int
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SumStack SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu and its own
runs. Scores are stored per-server under the SSH user name, so everyone
shares the same leaderboard.

Settings come from the ssh section of the settings file and from
SUMSTACK_SSH_HOST / SUMSTACK_SSH_PORT; the flags below override both.
The host key is generated on first start if it does not exist.

Examples:
  sumstack serve                           # Listen on the configured address
  sumstack serve --port 2222               # Listen on port 2222
  sumstack serve --host-key ./my_host_key  # Use specific host key
  sumstack serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "Address to listen on")
	serveCmd.Flags().IntVar(&flagSSHPort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
}

func runServe(_ *cobra.Command, _ []string) {
	sshCfg := settings.SSH
	if flagSSHHost != "" {
		sshCfg.Host = flagSSHHost
	}
	if flagSSHPort > 0 {
		sshCfg.Port = flagSSHPort
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}

	logger, closeLog := newLogger(false)
	defer closeLog()
	configureGames(logger)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     sshCfg.Addr(),
		HostKeyPath: config.ExpandHome(sshCfg.HostKeyPath),
		IdleTimeout: sshCfg.IdleTimeout,
		MaxTimeout:  sshCfg.MaxTimeout,
		TickRate:    settings.Game.TickRate,
		Seed:        flagSeed,
		DefaultMode: settings.Game.DefaultMode,
	}, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SumStack SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", sshCfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
