package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/transport/mcp"
	"github.com/vovakirdan/tui-toybox/internal/transport/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [game]",
	Short: "Serve games as MCP tools on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout. Tools create
sessions, step them with ALE actions, run queries, render frames as text
and save or load games.

Logs go to stderr so they do not corrupt the protocol stream.

Example client configuration:
  {"command": "toybox", "args": ["mcp"]}`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMCP,
}

func runMCP(_ *cobra.Command, args []string) {
	logger := newLogger("mcp")
	sim := createSim(gameArg(args))

	store, err := openStoreOptional()
	if err != nil {
		logger.Warn("continuing without database", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	srv := mcp.NewServer(session.NewManager(sim), store, logger)
	logger.Info("serving MCP on stdio", "game", sim.ID())
	if err := srv.ServeStdio(); err != nil {
		logger.Error("mcp server", "error", err)
	}
}
