package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/replay"
)

var flagRunsLimit int

var replayCmd = &cobra.Command{
	Use:   "replay [run-id]",
	Short: "Replay a recorded run and verify it",
	Long: `Re-run a recorded action sequence from its seed and check that it
reproduces the recorded trace hash. Without an id, lists recent runs.

Examples:
  toybox replay
  toybox replay 12`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to list")
}

func runReplay(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 0 {
		runs, err := store.RecentRuns(defaultGame, flagRunsLimit)
		if err != nil {
			fatal("listing runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			fmt.Println()
			fmt.Println("Record one with 'toybox headless --record'.")
			return
		}
		fmt.Printf("  %-5s  %-10s  %-7s  %-7s  %-16s  %s\n", "Run", "Seed", "Ticks", "Score", "Trace", "Date")
		fmt.Printf("  %-5s  %-10s  %-7s  %-7s  %-16s  %s\n", "---", "----", "-----", "-----", "-----", "----")
		for _, r := range runs {
			fmt.Printf("  %-5d  %-10d  %-7d  %-7d  %016x  %s\n",
				r.ID, r.Seed, r.Ticks, r.Score, r.TraceHash, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal("invalid run id %q", args[0])
	}

	run, err := store.RunByID(id)
	if err != nil {
		fatal("loading run %d: %v", id, err)
	}
	actions, err := replay.ActionsFromInts(run.Actions)
	if err != nil {
		fatal("%v", err)
	}

	sim := createSim(run.GameID)
	rec := &replay.Recording{
		GameID:    run.GameID,
		Seed:      run.Seed,
		Actions:   actions,
		Score:     run.Score,
		TraceHash: run.TraceHash,
	}

	again, err := replay.Replay(sim, rec)
	switch {
	case errors.Is(err, replay.ErrDiverged):
		fmt.Printf("Run %d DIVERGED after %d ticks\n", id, again.Ticks())
		fmt.Printf("  recorded: score %d  trace %016x\n", run.Score, run.TraceHash)
		fmt.Printf("  replayed: score %d  trace %016x\n", again.Score, again.TraceHash)
		os.Exit(2)
	case err != nil:
		fatal("replaying run %d: %v", id, err)
	}

	fmt.Printf("Run %d verified: %d ticks, score %d, level %d, trace %016x\n",
		id, again.Ticks(), again.Score, again.Level, again.TraceHash)
}
