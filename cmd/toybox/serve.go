package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve [game]",
	Short: "Start the toybox SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with a fresh seed.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.toybox/host_key

Examples:
  toybox serve                           # Listen on :23234 with auto-generated key
  toybox serve --ssh :2222               # Listen on port 2222
  toybox serve --host-key ./my_host_key  # Use specific host key
  toybox serve --db ./toybox.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234
  ssh -t localhost -p 23234 42           # Play seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 32, "Maximum concurrent players (0 = unlimited)")
}

func runServe(_ *cobra.Command, args []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.GameID = gameArg(args)
	cfg.Options = simOptions()
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.MaxSessions = flagMaxSessions

	server, err := tui.NewSSHServer(cfg, newLogger("ssh"))
	if err != nil {
		fatal("creating server: %v", err)
	}

	if err := server.ListenAndServe(); err != nil {
		fatal("server error: %v", err)
	}
}
