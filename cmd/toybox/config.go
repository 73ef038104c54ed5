package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the default configuration",
	Long: `Print the embedded default YAML for a game. Copy it to
~/.toybox/configs/<game>.yaml or ./configs/<game>.yaml to customize.

Examples:
  toybox config > ~/.toybox/configs/amidar.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	data := config.GetDefaultYAML(gameArg(args))
	if data == nil {
		fatal("no default configuration for %q", gameArg(args))
	}
	os.Stdout.Write(data) //nolint:errcheck // stdout write failures are not actionable
}
