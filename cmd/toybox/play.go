package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/platform/tui"
	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/storage"
)

var flagLoadSave string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: amidar).

Controls:
  Arrows/WASD/HJKL - Move (held for a few ticks after each key repeat)
  Space/X          - Jump
  P/Esc            - Pause
  R                - Restart (after game over)
  F5               - Quicksave
  Ctrl+S           - Screenshot to ~/.toybox/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives and jumps, slower enemies
  normal - The configured defaults
  hard   - Fewer lives and jumps, faster enemies
  fixed  - Enemies never speed up

Examples:
  toybox play
  toybox play amidar --difficulty easy
  toybox play --seed 1234
  toybox play --load quicksave`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLoadSave, "load", "", "Resume a saved game by name")
}

func runPlay(_ *cobra.Command, args []string) {
	sim := createSim(gameArg(args))

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var restored registry.State
	if flagLoadSave != "" {
		if store == nil {
			fatal("--load needs the database")
		}
		save, loadErr := store.LoadState(flagLoadSave)
		if loadErr != nil {
			store.Close()
			fatal("loading %q: %v", flagLoadSave, loadErr)
		}
		if save.GameID != sim.ID() {
			store.Close()
			fatal("save %q is a %s game", flagLoadSave, save.GameID)
		}
		restored, err = sim.StateFromJSON(save.Config, save.State)
		if err != nil {
			store.Close()
			fatal("restoring %q: %v", flagLoadSave, err)
		}
	}

	runErr := tui.Run(sim, restored, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
