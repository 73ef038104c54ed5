package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

type stubSim struct{ id string }

func (s stubSim) ID() string  { return s.id }
func (stubSim) Title() string { return "Stub" }

func (stubSim) LegalActions() []core.AleAction { return []core.AleAction{core.AleNoop} }
func (stubSim) QueryNames() []string           { return nil }

func (stubSim) NewGame(uint32) (State, error) { return nil, errors.New("not playable") }

func (stubSim) StateFromJSON(_, _ []byte) (State, error) {
	return nil, errors.New("not restorable")
}

func TestRegisterCreateList(t *testing.T) {
	var got Options
	Register("zz-stub", "Stub", func(opts Options) (Simulation, error) {
		got = opts
		return stubSim{id: "zz-stub"}, nil
	})

	require.True(t, Exists("zz-stub"))
	require.False(t, Exists("zz-missing"))

	sim, err := Create("zz-stub", Options{Difficulty: "hard"})
	require.NoError(t, err)
	require.Equal(t, "zz-stub", sim.ID())
	require.Equal(t, "hard", got.Difficulty)

	games := List()
	require.NotEmpty(t, games)
	require.Contains(t, games, GameInfo{ID: "zz-stub", Title: "Stub"})
	for i := 1; i < len(games); i++ {
		require.Less(t, games[i-1].ID, games[i].ID)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", "Dup", func(Options) (Simulation, error) { return stubSim{id: "zz-dup"}, nil })
	require.Panics(t, func() {
		Register("zz-dup", "Dup", func(Options) (Simulation, error) { return stubSim{id: "zz-dup"}, nil })
	})
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("zz-missing", Options{})
	require.ErrorContains(t, err, "unknown game")

	boom := errors.New("boom")
	Register("zz-broken", "Broken", func(Options) (Simulation, error) { return nil, boom })
	_, err = Create("zz-broken", Options{})
	require.ErrorIs(t, err, boom)
}
