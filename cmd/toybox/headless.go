package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/replay"
	"github.com/vovakirdan/tui-toybox/internal/storage"
)

var (
	flagTicks    int
	flagPolicy   string
	flagRecord   bool
	flagProgress int
)

var headlessCmd = &cobra.Command{
	Use:   "headless [game]",
	Short: "Run a game without a display",
	Long: `Drive a game with a fixed policy and print the outcome.

Policies:
  noop     - Never press anything (default)
  random   - Random legal actions, each held for a short while
  <ACTION> - Any ALE action name, e.g. UP, LEFTFIRE

With --record the run is stored and can later be verified with
'toybox replay <id>'.

Examples:
  toybox headless --ticks 2000
  toybox headless --policy random --seed 9 --record
  toybox headless --policy LEFT --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum number of ticks to run")
	headlessCmd.Flags().StringVar(&flagPolicy, "policy", "noop", "Action policy: noop, random, or an ALE action name")
	headlessCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the run for later replay")
	headlessCmd.Flags().IntVar(&flagProgress, "progress", 600, "Log progress every N ticks (0 disables)")
}

func runHeadless(_ *cobra.Command, args []string) {
	logger := newLogger("headless")
	sim := createSim(gameArg(args))

	seed := flagSeed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano()) //#nosec G115 -- truncation is fine for a seed
	}

	policy, err := replay.ParsePolicy(flagPolicy, seed, sim.LegalActions())
	if err != nil {
		fatal("%v", err)
	}

	logger.Info("running", "game", sim.ID(), "seed", seed, "policy", flagPolicy, "ticks", flagTicks)
	start := time.Now()
	rec, err := replay.Record(sim, seed, policy, flagTicks, func(tick int, st registry.State) {
		if flagProgress > 0 && (tick+1)%flagProgress == 0 {
			logger.Debug("progress", "tick", tick+1, "score", st.Score(), "lives", st.Lives(), "level", st.Level())
		}
	})
	if err != nil {
		fatal("running game: %v", err)
	}
	logger.Info("finished",
		"ticks", rec.Ticks(),
		"score", rec.Score,
		"lives", rec.Lives,
		"level", rec.Level,
		"game_over", rec.GameOver,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if !flagRecord {
		return
	}

	store := openStore()
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		GameID:    rec.GameID,
		Seed:      rec.Seed,
		Actions:   replay.ActionsToInts(rec.Actions),
		Ticks:     rec.Ticks(),
		Score:     rec.Score,
		TraceHash: rec.TraceHash,
	})
	if err != nil {
		logger.Error("saving run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "trace", rec.TraceHash)
}
