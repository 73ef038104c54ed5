package amidar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/random"
)

// smallLoop walks the small board clockwise from the top-left corner.
var smallLoop = []uint32{0, 1, 2, 3, 4, 9, 14, 13, 12, 11, 10, 5}

func smallEnv(t *testing.T) *moveEnv {
	t.Helper()
	return &moveEnv{
		board:  mustBoard(t, smallBoard),
		routes: [][]uint32{smallLoop},
		rng:    random.New(1),
	}
}

func TestPlayerAIFollowsInput(t *testing.T) {
	env := smallEnv(t)
	ai := &PlayerAI{}

	_, ok := ai.chooseNextTile(NewTilePoint(0, 1), core.Input{}, env)
	require.False(t, ok)

	_, ok = ai.chooseNextTile(NewTilePoint(0, 1), core.Input{Right: true}, env)
	require.False(t, ok, "moving into a hole")

	next, ok := ai.chooseNextTile(NewTilePoint(0, 1), core.Input{Up: true}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(0, 0), next)

	// Left wins over Up when both are held.
	next, ok = ai.chooseNextTile(NewTilePoint(1, 0), core.Input{Up: true, Left: true}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(0, 0), next)
}

func TestLookupAIWalksRoute(t *testing.T) {
	env := smallEnv(t)
	ai := &EnemyLookupAI{}

	require.Equal(t, NewTilePoint(0, 0), ai.startTile(env, TilePoint{}))

	next, ok := ai.chooseNextTile(TilePoint{}, core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(1, 0), next)

	for range len(smallLoop) - 1 {
		_, ok = ai.chooseNextTile(TilePoint{}, core.Input{}, env)
		require.True(t, ok)
	}
	require.Equal(t, uint32(0), ai.Next)

	ai.Next = 5
	ai.Reset()
	require.Zero(t, ai.Next)
}

func TestLookupAIMissingRoute(t *testing.T) {
	env := smallEnv(t)
	ai := &EnemyLookupAI{DefaultRouteIndex: 3}

	_, ok := ai.chooseNextTile(TilePoint{}, core.Input{}, env)
	require.False(t, ok)
}

func TestPerimeterAICirclesClockwise(t *testing.T) {
	env := smallEnv(t)
	ai := &EnemyPerimeterAI{}

	tests := []struct {
		from, want TilePoint
	}{
		{NewTilePoint(0, 0), NewTilePoint(1, 0)},
		{NewTilePoint(4, 0), NewTilePoint(4, 1)},
		{NewTilePoint(4, 2), NewTilePoint(3, 2)},
		{NewTilePoint(0, 2), NewTilePoint(0, 1)},
	}
	for _, tt := range tests {
		next, ok := ai.chooseNextTile(tt.from, core.Input{}, env)
		require.True(t, ok)
		require.Equal(t, tt.want, next, "from %v", tt.from)
	}
	require.Equal(t, NewTilePoint(0, 0), ai.startTile(env, NewTilePoint(4, 2)))
}

func TestAmidarMovementBounces(t *testing.T) {
	env := smallEnv(t)
	ai := &EnemyAmidarMvmt{Vert: core.Down, Horiz: core.Left, StartVert: core.Down, StartHoriz: core.Left}

	next, ok := ai.chooseNextTile(NewTilePoint(0, 0), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(0, 1), next)

	next, ok = ai.chooseNextTile(NewTilePoint(0, 2), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(1, 2), next)
	require.Equal(t, core.Up, ai.Vert)
	require.Equal(t, core.Right, ai.Horiz)

	ai.Reset()
	require.Equal(t, core.Down, ai.Vert)
	require.Equal(t, core.Left, ai.Horiz)
}

func TestRandomMovementKeepsHeadingBetweenJunctions(t *testing.T) {
	env := smallEnv(t)
	ai := &EnemyRandomMvmt{Dir: core.Left, StartDir: core.Left}

	before := env.rng.State()
	next, ok := ai.chooseNextTile(NewTilePoint(2, 0), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(1, 0), next)
	require.NotEqual(t, before, env.rng.State(), "a sample is drawn every call")

	next, ok = ai.chooseNextTile(NewTilePoint(0, 0), core.Input{}, env)
	require.True(t, ok)
	require.Contains(t, []TilePoint{NewTilePoint(1, 0), NewTilePoint(0, 1)}, next)
	require.Equal(t, next, NewTilePoint(0, 0).Step(ai.Dir))
}

func TestTargetPlayerChasesInSight(t *testing.T) {
	env := smallEnv(t)
	env.player = NewPlayer(NewTilePoint(4, 0).ToWorld(), 8, 2)
	ai := &EnemyTargetPlayer{Dir: core.Left, StartDir: core.Left, VisionDistance: 10}

	next, ok := ai.chooseNextTile(NewTilePoint(1, 0), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(2, 0), next)
	require.Equal(t, core.Right, ai.Dir)
	require.NotNil(t, ai.PlayerSeen)
	require.Equal(t, NewTilePoint(4, 0), *ai.PlayerSeen)

	// Out of sight it keeps heading for the last sighting.
	env.player = nil
	next, ok = ai.chooseNextTile(NewTilePoint(2, 0), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(3, 0), next)

	_, ok = ai.chooseNextTile(NewTilePoint(4, 0), core.Input{}, env)
	require.True(t, ok)
	require.Nil(t, ai.PlayerSeen)

	ai.Reset()
	require.Equal(t, core.Left, ai.Dir)
}

func TestTargetPlayerVisionLimit(t *testing.T) {
	env := smallEnv(t)
	env.player = NewPlayer(NewTilePoint(4, 0).ToWorld(), 8, 2)
	ai := &EnemyTargetPlayer{Dir: core.Left, StartDir: core.Left, VisionDistance: 1}

	next, ok := ai.chooseNextTile(NewTilePoint(2, 0), core.Input{}, env)
	require.True(t, ok)
	require.Equal(t, NewTilePoint(1, 0), next)
	require.Nil(t, ai.PlayerSeen)
}

func TestCloneCopiesMemory(t *testing.T) {
	seen := NewTilePoint(1, 1)
	ai := &EnemyTargetPlayer{PlayerSeen: &seen}

	c := ai.clone().(*EnemyTargetPlayer)
	c.PlayerSeen.TX = 9

	require.Equal(t, int32(1), ai.PlayerSeen.TX)
}
