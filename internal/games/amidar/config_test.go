package amidar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/config"
	"github.com/vovakirdan/tui-toybox/internal/core"
)

func testLevels(t *testing.T) *LevelRegistry {
	t.Helper()
	levels, err := NewLevelRegistry()
	require.NoError(t, err)
	return levels
}

func TestColorsAreDistinctInGrayscale(t *testing.T) {
	cfg := DefaultConfig(testLevels(t))

	seen := make(map[uint8]core.RGB)
	for _, c := range cfg.Colors() {
		g := c.Grayscale()
		prev, dup := seen[g]
		require.False(t, dup, "%v and %v share gray level %d", prev, c, g)
		seen[g] = c
	}
}

func TestDefaultConfigFollowsEveryRoute(t *testing.T) {
	levels := testLevels(t)
	cfg := DefaultConfig(levels)

	require.Len(t, cfg.Enemies, levels.NumRoutes())
	for i, ai := range cfg.Enemies {
		require.Equal(t, &EnemyLookupAI{DefaultRouteIndex: uint32(i)}, ai) //#nosec G115 -- test index
	}
}

func TestConfigFromDefaultSettings(t *testing.T) {
	levels := testLevels(t)

	cfg, err := ConfigFromSettings(config.DefaultAmidarConfig(), levels)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(levels), cfg)
}

func TestConfigFromSettingsEnemies(t *testing.T) {
	levels := testLevels(t)
	settings := config.DefaultAmidarConfig()
	settings.Enemies = []config.EnemyConfig{
		{Kind: "lookup", Route: 2},
		{Kind: "perimeter"},
		{Kind: "amidar", StartX: 7, StartY: 6, Vert: "Up"},
		{Kind: "random", StartX: 13, StartY: 12, Dir: "Right"},
		{Kind: "target", StartX: 0, StartY: 30, Vision: 8},
	}

	cfg, err := ConfigFromSettings(settings, levels)
	require.NoError(t, err)
	require.Equal(t, []MovementAI{
		&EnemyLookupAI{DefaultRouteIndex: 2},
		&EnemyPerimeterAI{Start: NewTilePoint(0, 0)},
		&EnemyAmidarMvmt{Vert: core.Up, Horiz: core.Left, StartVert: core.Up, StartHoriz: core.Left, Start: NewTilePoint(7, 6)},
		&EnemyRandomMvmt{Start: NewTilePoint(13, 12), StartDir: core.Right, Dir: core.Right},
		&EnemyTargetPlayer{Start: NewTilePoint(0, 30), StartDir: core.Left, Dir: core.Left, VisionDistance: 8},
	}, cfg.Enemies)

	s, err := NewGame(cfg, levels)
	require.NoError(t, err)
	for range 30 {
		s.UpdateMut(core.Input{})
	}
	require.Equal(t, 3, s.Lives())
	require.NotEqual(t, NewTilePoint(0, 0), s.Core.Enemies[1].Tile())
}

func TestConfigFromSettingsRejectsBadEnemies(t *testing.T) {
	levels := testLevels(t)

	for _, e := range []config.EnemyConfig{
		{Kind: "ghost"},
		{Kind: "lookup", Route: 99},
		{Kind: "random", Dir: "North"},
	} {
		settings := config.DefaultAmidarConfig()
		settings.Enemies = []config.EnemyConfig{e}
		_, err := ConfigFromSettings(settings, levels)
		require.Error(t, err, "%+v", e)
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig(testLevels(t))
	c := cfg.Clone()

	c.Rand.NextU64()
	c.Board[0] = "changed"
	c.Enemies[0].(*EnemyLookupAI).Next = 3

	require.NotEqual(t, cfg.Rand.State(), c.Rand.State())
	require.NotEqual(t, "changed", cfg.Board[0])
	require.Zero(t, cfg.Enemies[0].(*EnemyLookupAI).Next)
}

func TestLegalActions(t *testing.T) {
	cfg := &Config{}
	actions := cfg.LegalActions()

	require.Len(t, actions, 10)
	require.Equal(t, core.AleNoop, actions[0])
	require.Equal(t, core.AleDownFire, actions[9])
}
