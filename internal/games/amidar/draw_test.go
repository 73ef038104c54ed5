package amidar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

func countSprites(cmds []core.Drawable, prefix string) int {
	n := 0
	for _, c := range cmds {
		if sp, ok := c.(core.Sprite); ok && strings.HasPrefix(sp.ID, prefix) {
			n++
		}
	}
	return n
}

func TestDrawStartsWithClear(t *testing.T) {
	s := newTestGame(t)
	cmds := s.Draw()

	require.Equal(t, core.Clear{Color: s.Config.BgColor}, cmds[0])
	require.Equal(t, 362, countSprites(cmds, SpriteTileUnpainted+"_l1"))
	require.Equal(t, 1, countSprites(cmds, SpritePlayer+"_l1"))
	require.Equal(t, 5, countSprites(cmds, SpriteEnemy+"_l1"))
	require.Equal(t, 1, countSprites(cmds, SpriteDigitPrefix))
}

func TestDrawGameOverOnlyClears(t *testing.T) {
	s := newTestGame(t)
	s.Core.Lives = -1

	require.Equal(t, []core.Drawable{core.Clear{Color: s.Config.BgColor}}, s.Draw())
}

func TestDrawWithoutImages(t *testing.T) {
	s := newTestGame(t)
	s.Config.RenderImages = false
	cmds := s.Draw()

	rects := 0
	lives := 0
	for _, c := range cmds {
		if r, ok := c.(core.Rectangle); ok {
			rects++
			if r.W == 1 && r.Y == LivesY {
				lives++
			}
		}
	}
	// Tiles, player, enemies and life bars.
	require.Equal(t, 362+1+5+3, rects)
	require.Equal(t, 3, lives)
	require.Zero(t, countSprites(cmds, SpriteTileUnpainted))
}

func TestDrawPositions(t *testing.T) {
	s := newTestGame(t)
	s.Config.RenderImages = false
	cmds := s.Draw()

	player := core.Rectangle{
		Color: s.Config.PlayerColor,
		X:     BoardOffsetX + 31*TileWidth - 1,
		Y:     BoardOffsetY + 15*TileHeight - 1,
		W:     PlayerSize,
		H:     PlayerSize,
	}
	require.Contains(t, cmds, player)

	firstTile := core.Rectangle{Color: s.Config.UnpaintedColor, X: BoardOffsetX, Y: BoardOffsetY, W: TileWidth, H: TileHeight}
	require.Contains(t, cmds, firstTile)
}

func TestDrawScoreDigits(t *testing.T) {
	s := newTestGame(t)
	s.Core.Score = 305
	cmds := s.Draw()

	var digits []core.Sprite
	for _, c := range cmds {
		if sp, ok := c.(core.Sprite); ok && strings.HasPrefix(sp.ID, SpriteDigitPrefix) {
			digits = append(digits, sp)
		}
	}
	require.Len(t, digits, 3)
	require.Equal(t, "digit:3", digits[0].ID)
	require.Equal(t, ScoreX-2*DigitWidth, digits[0].X)
	require.Equal(t, "digit:5", digits[2].ID)
	require.Equal(t, ScoreX, digits[2].X)
	require.Equal(t, ScoreY+1, digits[2].Y)
}

func TestDrawPaintedBoxes(t *testing.T) {
	s := newTestGame(t)
	box := &s.Core.Board.Boxes[0]
	box.Painted = true
	tl, br := box.TopLeft, box.BottomRight
	inner := int((br.TX - tl.TX - 1) * (br.TY - tl.TY - 1))

	require.Equal(t, inner, countSprites(s.Draw(), SpritePaintedBoxBar))

	s.Config.RenderImages = false
	fill := core.Rectangle{
		Color: s.Config.InnerPaintedColor,
		X:     BoardOffsetX + (tl.TX+1)*TileWidth,
		Y:     BoardOffsetY + (tl.TY+1)*TileHeight,
		W:     (br.TX - tl.TX - 1) * TileWidth,
		H:     (br.TY - tl.TY - 1) * TileHeight,
	}
	require.Contains(t, s.Draw(), fill)
}

func TestSpriteVariantByLevel(t *testing.T) {
	tests := []struct {
		level int32
		want  string
	}{
		{1, "_l1"}, {2, "_l2"}, {3, "_l1"}, {5, "_l1"}, {6, "_l2"}, {7, "_l2"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, spriteVariant(tt.level), "level %d", tt.level)
	}
}

func TestMobVariantAlternatesEveryLevel(t *testing.T) {
	s := newTestGame(t)
	s.Core.Level = 7

	cmds := s.Draw()
	require.Equal(t, 362, countSprites(cmds, SpriteTileUnpainted+"_l2"))
	require.Equal(t, 1, countSprites(cmds, SpritePlayer+"_l1"))
	require.Equal(t, 5, countSprites(cmds, SpriteEnemy+"_l1"))

	s.Core.Level = 8
	cmds = s.Draw()
	require.Equal(t, 1, countSprites(cmds, SpritePlayer+"_l2"))
	require.Equal(t, 5, countSprites(cmds, SpriteEnemy+"_l2"))
}

func TestDrawEnemySpriteFollowsMode(t *testing.T) {
	s := newTestGame(t)

	s.Core.JumpTimer = 10
	require.Equal(t, 5, countSprites(s.Draw(), SpriteEnemyJump))

	s.Core.ChaseTimer = 10
	s.Core.Enemies[0].Caught = true
	cmds := s.Draw()
	require.Equal(t, 1, countSprites(cmds, SpriteEnemyCaught))
	require.Equal(t, 4, countSprites(cmds, SpriteEnemyChase))
}
