package amidar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRoutesAreValid(t *testing.T) {
	levels := testLevels(t)
	board := levels.DefaultBoard()

	require.Equal(t, 5, levels.NumRoutes())
	for i, route := range levels.Routes() {
		require.NotEmpty(t, route, "route %d", i)
		for _, id := range route {
			require.True(t, board.GetTile(board.LookupPosition(id)).Walkable(), "route %d tile %d", i, id)
		}
	}
}

func TestParseRoutesValidation(t *testing.T) {
	b := mustBoard(t, smallBoard)

	routes, err := ParseRoutes("0 1 2 3 4 9 14 13 12 11 10 5\n\n", b)
	require.NoError(t, err)
	require.Equal(t, [][]uint32{smallLoop}, routes)

	_, err = ParseRoutes("0 2", b)
	require.Error(t, err, "tiles are not adjacent")

	_, err = ParseRoutes("0 1 99", b)
	require.Error(t, err, "off the board")

	_, err = ParseRoutes("0 x", b)
	require.Error(t, err)
}

func TestBoardCacheHandsOutCopies(t *testing.T) {
	levels := testLevels(t)

	a, err := levels.Board(levels.DefaultLines())
	require.NoError(t, err)
	a.Paint(NewTilePoint(0, 0))

	b, err := levels.Board(levels.DefaultLines())
	require.NoError(t, err)
	require.False(t, b.IsPainted(NewTilePoint(0, 0)))
	require.False(t, levels.DefaultBoard().IsPainted(NewTilePoint(0, 0)))

	small, err := levels.Board(smallBoard)
	require.NoError(t, err)
	require.Len(t, small.Boxes, 1)

	_, err = levels.Board([]string{"=?="})
	require.ErrorIs(t, err, ErrUnrecognizedChar)
}

func TestBoardCacheIsBounded(t *testing.T) {
	levels := testLevels(t)

	for w := 3; w < 3+2*maxCachedBoards; w++ {
		lines := []string{strings.Repeat("=", w)}
		b, err := levels.Board(lines)
		require.NoError(t, err)
		require.Equal(t, uint32(w), b.Width) //#nosec G115 -- small test widths
	}
	require.Len(t, levels.cache, maxCachedBoards)

	// Uncached boards are still parsed fresh on every call.
	lines := []string{strings.Repeat("=", 40)}
	a, err := levels.Board(lines)
	require.NoError(t, err)
	a.Paint(NewTilePoint(1, 0))
	b, err := levels.Board(lines)
	require.NoError(t, err)
	require.False(t, b.IsPainted(NewTilePoint(1, 0)))
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"ab", "cd"}, SplitLines("ab\r\ncd\n"))
	require.Nil(t, SplitLines(""))
}

func TestLoadLevelRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BoardFile), []byte("c====\n=   =\n=====\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RoutesFile), []byte("0 1 2 3 4 9 14 13 12 11 10 5\n"), 0o600))

	levels, err := LoadLevelRegistry(dir)
	require.NoError(t, err)
	require.Equal(t, smallBoard, levels.DefaultLines())
	require.Equal(t, 1, levels.NumRoutes())

	_, err = LoadLevelRegistry(t.TempDir())
	require.Error(t, err)
}

func TestBrokenLevelDataFailsConstruction(t *testing.T) {
	_, err := NewLevelRegistryFrom("=#=", "")
	require.ErrorIs(t, err, ErrUnrecognizedChar)

	_, err = NewLevelRegistryFrom("===", "0 2")
	require.Error(t, err)
}
