package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/registry"
)

var (
	flagQueryGame  string
	flagQuerySave  string
	flagQueryState string
	flagQueryList  bool
)

var queryCmd = &cobra.Command{
	Use:   "query <name> [json-args]",
	Short: "Answer a query about a game state",
	Long: `Evaluate a named query against a fresh game, a saved game, or a
serialized state file. Arguments are passed as a JSON value.

Examples:
  toybox query --list
  toybox query player_tile
  toybox query num_tiles_unpainted --save quicksave
  toybox query enemy_tile 0 --state ./state.json --seed 3`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&flagQueryGame, "game", defaultGame, "Game to query")
	queryCmd.Flags().StringVar(&flagQuerySave, "save", "", "Query a saved game by name")
	queryCmd.Flags().StringVar(&flagQueryState, "state", "", "Query a serialized state file")
	queryCmd.Flags().BoolVar(&flagQueryList, "list", false, "List the available query names")
}

func runQuery(_ *cobra.Command, args []string) {
	sim := createSim(flagQueryGame)

	if flagQueryList || len(args) == 0 {
		for _, name := range sim.QueryNames() {
			fmt.Println(name)
		}
		return
	}

	st := queryState(sim)

	var raw json.RawMessage
	if len(args) > 1 {
		if !json.Valid([]byte(args[1])) {
			fatal("query arguments must be JSON, got %q", args[1])
		}
		raw = json.RawMessage(args[1])
	}

	out, err := st.QueryJSON(args[0], raw)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(out)
}

// queryState picks the state to query from the flags.
func queryState(sim registry.Simulation) registry.State {
	switch {
	case flagQuerySave != "":
		store := openStore()
		defer store.Close()
		save, err := store.LoadState(flagQuerySave)
		if err != nil {
			fatal("loading %q: %v", flagQuerySave, err)
		}
		st, err := sim.StateFromJSON(save.Config, save.State)
		if err != nil {
			fatal("restoring %q: %v", flagQuerySave, err)
		}
		return st

	case flagQueryState != "":
		data, err := os.ReadFile(flagQueryState)
		if err != nil {
			fatal("%v", err)
		}
		fresh, err := sim.NewGame(flagSeed)
		if err != nil {
			fatal("%v", err)
		}
		cfg, err := fresh.ConfigJSON()
		if err != nil {
			fatal("%v", err)
		}
		st, err := sim.StateFromJSON(cfg, data)
		if err != nil {
			fatal("restoring %s: %v", flagQueryState, err)
		}
		return st
	}

	st, err := sim.NewGame(flagSeed)
	if err != nil {
		fatal("%v", err)
	}
	return st
}
