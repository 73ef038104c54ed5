package amidar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/registry"
)

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	sim, err := registry.Create(ID, registry.Options{})
	require.NoError(t, err)
	require.Equal(t, "Amidar", sim.Title())
	require.Len(t, sim.LegalActions(), 10)
}

func TestSimulationSaveAndRestore(t *testing.T) {
	sim, err := registry.Create(ID, registry.Options{})
	require.NoError(t, err)

	st, err := sim.NewGame(7)
	require.NoError(t, err)
	for _, in := range scriptedInputs(7, 200) {
		st.UpdateMut(in)
	}

	stateData, err := st.ToJSON()
	require.NoError(t, err)
	configData, err := st.ConfigJSON()
	require.NoError(t, err)

	restored, err := sim.StateFromJSON(configData, stateData)
	require.NoError(t, err)
	again, err := restored.ToJSON()
	require.NoError(t, err)
	require.Equal(t, string(stateData), string(again))
	require.Equal(t, st.Score(), restored.Score())

	_, err = sim.StateFromJSON(configData, []byte("nope"))
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestSimulationSeedsDiffer(t *testing.T) {
	sim, err := registry.Create(ID, registry.Options{})
	require.NoError(t, err)

	a, err := sim.NewGame(1)
	require.NoError(t, err)
	b, err := sim.NewGame(2)
	require.NoError(t, err)

	ca, err := a.ConfigJSON()
	require.NoError(t, err)
	cb, err := b.ConfigJSON()
	require.NoError(t, err)
	require.NotEqual(t, string(ca), string(cb))
}

func TestDifficultyOption(t *testing.T) {
	sim, err := registry.Create(ID, registry.Options{Difficulty: "hard"})
	require.NoError(t, err)

	st, err := sim.NewGame(1)
	require.NoError(t, err)
	require.Equal(t, 2, st.Lives())

	_, err = registry.Create(ID, registry.Options{Difficulty: "nightmare"})
	require.Error(t, err)
}

func TestLoadWithConfigFile(t *testing.T) {
	_, err := Load(registry.Options{ConfigPath: "does-not-exist.yaml"})
	require.Error(t, err)

	sim, err := Load(registry.Options{})
	require.NoError(t, err)
	require.Equal(t, core.AleNoop, sim.LegalActions()[0])
	require.Equal(t, int32(3), sim.Config().StartLives)
}

func TestLoadWithLevelDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoardFile), []byte(defaultBoardText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RoutesFile), []byte(defaultRoutesText), 0o644))

	sim, err := Load(registry.Options{LevelDir: dir})
	require.NoError(t, err)
	require.False(t, sim.Config().DefaultBoardBugs)

	_, err = Load(registry.Options{LevelDir: filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestFixedDifficultyKeepsEnemySpeed(t *testing.T) {
	sim, err := Load(registry.Options{Difficulty: "fixed"})
	require.NoError(t, err)
	require.True(t, sim.Config().EnemySpeedFixed)
	require.Equal(t, sim.Config().EnemyStartingSpeed, sim.Config().enemySpeed(7))
}

func TestEachSimulationOwnsItsLevels(t *testing.T) {
	a, err := Load(registry.Options{})
	require.NoError(t, err)
	b, err := Load(registry.Options{})
	require.NoError(t, err)

	require.NotSame(t, a.levels, b.levels)
	require.Equal(t, a.levels.DefaultLines(), b.levels.DefaultLines())
}
