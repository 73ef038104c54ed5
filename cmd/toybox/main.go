// toybox runs deterministic arcade simulations in the terminal, headless,
// or behind network transports.
//
// Usage:
//
//	toybox list                  - List available games
//	toybox play [game]           - Play a game in the terminal
//	toybox headless [game]       - Run a policy without a display
//	toybox replay <run-id>       - Re-run a recorded run and verify it
//	toybox query <name> [arg]    - Answer a query about a fresh or saved game
//	toybox scores [game]         - Show high scores
//	toybox saves                 - List or delete saved games
//	toybox config [game]         - Print the default YAML configuration
//	toybox serve                 - Start SSH server for remote play
//	toybox ws                    - Serve games over WebSocket
//	toybox mcp                   - Serve games as MCP tools on stdio
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.toybox/toybox.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-toybox/internal/games/amidar"
	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/storage"
)

const defaultGame = "amidar"

var (
	// Global flags
	flagFPS        int
	flagSeed       uint32
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelDir   string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toybox",
	Short: "Toybox - deterministic arcade simulations",
	Long: `Toybox hosts small deterministic arcade simulations. Games can be played
in the terminal, driven headless by a policy, replayed from recorded runs,
or served over SSH, WebSocket and MCP.

Examples:
  toybox play
  toybox play amidar --difficulty hard --seed 42
  toybox headless --policy random --ticks 5000 --record
  toybox replay 3
  toybox query num_tiles_unpainted --save quicksave
  toybox serve --ssh :2222
  toybox ws --addr :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.toybox/toybox.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "level-dir", "", "Directory with replacement level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wsCmd)
	rootCmd.AddCommand(mcpCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the stderr logger shared by servers and runners.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// gameArg returns the game named on the command line or the default.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}

func simOptions() registry.Options {
	return registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		LevelDir:   flagLevelDir,
	}
}

// createSim looks up a game and builds it with the global flags.
func createSim(gameID string) registry.Simulation {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'toybox list' to see available games.")
		os.Exit(1)
	}
	sim, err := registry.Create(gameID, simOptions())
	if err != nil {
		fatal("%v", err)
	}
	return sim
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening database: %v", err)
	}
	return store
}

// openStoreOptional opens the database for servers that can run without it.
func openStoreOptional() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
