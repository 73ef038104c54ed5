package replay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
	_ "github.com/vovakirdan/tui-toybox/internal/games/amidar"
	"github.com/vovakirdan/tui-toybox/internal/registry"
)

func newSim(t *testing.T) registry.Simulation {
	t.Helper()
	sim, err := registry.Create("amidar", registry.Options{})
	require.NoError(t, err)
	return sim
}

func TestRecordIsDeterministic(t *testing.T) {
	sim := newSim(t)

	a, err := Record(sim, 4, Random(4, sim.LegalActions(), 10), 600, nil)
	require.NoError(t, err)
	b, err := Record(sim, 4, Random(4, sim.LegalActions(), 10), 600, nil)
	require.NoError(t, err)

	require.Equal(t, a.TraceHash, b.TraceHash)
	require.Equal(t, a.Actions, b.Actions)
	require.Equal(t, "amidar", a.GameID)
}

func TestReplayReproducesRecording(t *testing.T) {
	sim := newSim(t)

	rec, err := Record(sim, 11, Random(2, sim.LegalActions(), 20), 500, nil)
	require.NoError(t, err)

	again, err := Replay(sim, rec)
	require.NoError(t, err)
	require.Equal(t, rec.Score, again.Score)
	require.Equal(t, rec.Ticks(), again.Ticks())
}

func TestReplayDetectsDivergence(t *testing.T) {
	sim := newSim(t)

	rec, err := Record(sim, 1, Constant(core.AleUp), 200, nil)
	require.NoError(t, err)
	for i := range rec.Actions {
		rec.Actions[i] = core.AleNoop
	}

	_, err = Replay(sim, rec)
	require.ErrorIs(t, err, ErrDiverged)
}

func TestReplayRejectsOtherGame(t *testing.T) {
	sim := newSim(t)
	_, err := Replay(sim, &Recording{GameID: "pong"})
	require.Error(t, err)
}

func TestRecordObservesEveryTick(t *testing.T) {
	sim := newSim(t)

	seen := 0
	rec, err := Record(sim, 1, Constant(core.AleNoop), 50, func(tick int, st registry.State) {
		require.Equal(t, seen, tick)
		seen++
	})
	require.NoError(t, err)
	require.Equal(t, 50, seen)
	require.Equal(t, 50, rec.Ticks())
}

func TestParsePolicy(t *testing.T) {
	legal := []core.AleAction{core.AleNoop, core.AleUp}

	p, err := ParsePolicy("UPFIRE", 1, legal)
	require.NoError(t, err)
	require.Equal(t, core.AleUpFire, p.Next(0))

	p, err = ParsePolicy("", 1, legal)
	require.NoError(t, err)
	require.Equal(t, core.AleNoop, p.Next(7))

	p, err = ParsePolicy("random", 1, legal)
	require.NoError(t, err)
	require.Contains(t, legal, p.Next(0))

	_, err = ParsePolicy("sideways", 1, legal)
	require.Error(t, err)
}

func TestScriptedFallsBackToNoop(t *testing.T) {
	p := Scripted([]core.AleAction{core.AleLeft})
	require.Equal(t, core.AleLeft, p.Next(0))
	require.Equal(t, core.AleNoop, p.Next(1))
}

func TestActionsIntConversion(t *testing.T) {
	actions := []core.AleAction{core.AleNoop, core.AleDownFire}
	back, err := ActionsFromInts(ActionsToInts(actions))
	require.NoError(t, err)
	require.Equal(t, actions, back)

	_, err = ActionsFromInts([]int{99})
	require.Error(t, err)
}
