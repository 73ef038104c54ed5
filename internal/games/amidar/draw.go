package amidar

import (
	"strconv"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

// Sprite identifiers emitted by Draw. Level-dependent sprites carry an
// "_l1" or "_l2" suffix.
const (
	SpriteTilePainted   = "tile_painted"
	SpriteTileUnpainted = "tile_unpainted"
	SpritePlayer        = "player"
	SpriteEnemy         = "enemy"
	SpriteEnemyChase    = "enemy_chase"
	SpriteEnemyCaught   = "enemy_caught"
	SpriteEnemyJump     = "enemy_jump"
	SpritePaintedBoxBar = "painted_box_bar"
	SpriteDigitPrefix   = "digit:"
)

// spriteVariant alternates art between odd early levels and everything else.
func spriteVariant(level int32) string {
	if level%2 == 1 && level < 6 {
		return "_l1"
	}
	return "_l2"
}

// mobVariant alternates player and enemy art on every level.
func mobVariant(level int32) string {
	if level%2 == 1 {
		return "_l1"
	}
	return "_l2"
}

// Draw renders the state as an ordered list of draw commands in screen pixels.
func (s *State) Draw() []core.Drawable {
	cfg := s.Config
	st := s.Core
	out := []core.Drawable{core.Clear{Color: cfg.BgColor}}
	if st.Lives < 0 {
		return out
	}

	out = s.drawTiles(out, spriteVariant(st.Level))
	out = s.drawBoxes(out)
	variant := mobVariant(st.Level)

	p := st.Player.Position.ToScreen()
	if cfg.RenderImages {
		out = append(out, core.Sprite{
			ID:    SpritePlayer + variant,
			Color: cfg.PlayerColor,
			X:     BoardOffsetX + p.SX - 1,
			Y:     BoardOffsetY + p.SY - 1,
			W:     PlayerSize,
			H:     PlayerSize,
		})
	} else {
		out = append(out, core.Rectangle{
			Color: cfg.PlayerColor,
			X:     BoardOffsetX + p.SX - 1,
			Y:     BoardOffsetY + p.SY - 1,
			W:     PlayerSize,
			H:     PlayerSize,
		})
	}

	for _, e := range st.Enemies {
		pos := e.Position.ToScreen()
		x := BoardOffsetX + pos.SX - 1
		y := BoardOffsetY + pos.SY - 1
		if !cfg.RenderImages {
			out = append(out, core.Rectangle{Color: cfg.EnemyColor, X: x, Y: y, W: EnemySize, H: EnemySize})
			continue
		}
		id := SpriteEnemy
		switch {
		case st.ChaseTimer > 0 && e.Caught:
			id = SpriteEnemyCaught
		case st.ChaseTimer > 0:
			id = SpriteEnemyChase
		case st.JumpTimer > 0:
			id = SpriteEnemyJump
		}
		out = append(out, core.Sprite{ID: id + variant, Color: cfg.EnemyColor, X: x, Y: y, W: EnemySize, H: EnemySize})
	}

	out = s.drawScore(out)
	for i := range st.Lives {
		out = append(out, core.Rectangle{
			Color: cfg.PlayerColor,
			X:     LivesX - i*LivesXStep,
			Y:     LivesY,
			W:     1,
			H:     DigitHeight + 1,
		})
	}
	return out
}

func (s *State) drawTiles(out []core.Drawable, variant string) []core.Drawable {
	cfg := s.Config
	for ty, row := range s.Core.Board.Tiles {
		for tx, tile := range row {
			if tile == Empty {
				continue
			}
			x := BoardOffsetX + int32(tx)*TileWidth  //#nosec G115 -- board width
			y := BoardOffsetY + int32(ty)*TileHeight //#nosec G115 -- board height
			color, id := cfg.UnpaintedColor, SpriteTileUnpainted
			if tile == Painted {
				color, id = cfg.PaintedColor, SpriteTilePainted
			}
			if cfg.RenderImages {
				out = append(out, core.Sprite{ID: id + variant, Color: color, X: x, Y: y, W: TileWidth, H: TileHeight})
			} else {
				out = append(out, core.Rectangle{Color: color, X: x, Y: y, W: TileWidth, H: TileHeight})
			}
		}
	}
	return out
}

// drawBoxes fills the interior of every painted box.
func (s *State) drawBoxes(out []core.Drawable) []core.Drawable {
	cfg := s.Config
	for _, gb := range s.Core.Board.Boxes {
		if !gb.Painted {
			continue
		}
		tl, br := gb.TopLeft, gb.BottomRight
		if cfg.RenderImages {
			for x := tl.TX + 1; x < br.TX; x++ {
				for y := tl.TY + 1; y < br.TY; y++ {
					out = append(out, core.Sprite{
						ID:    SpritePaintedBoxBar,
						Color: cfg.InnerPaintedColor,
						X:     BoardOffsetX + x*TileWidth,
						Y:     BoardOffsetY + y*TileHeight,
						W:     TileWidth,
						H:     TileHeight,
					})
				}
			}
			continue
		}
		origin := tl.Translate(1, 1).ToWorld().ToScreen()
		dst := br.ToWorld().ToScreen()
		out = append(out, core.Rectangle{
			Color: cfg.InnerPaintedColor,
			X:     BoardOffsetX + origin.SX,
			Y:     BoardOffsetY + origin.SY,
			W:     dst.SX - origin.SX,
			H:     dst.SY - origin.SY,
		})
	}
	return out
}

// drawScore places digit sprites right-aligned so the last digit starts at ScoreX.
func (s *State) drawScore(out []core.Drawable) []core.Drawable {
	digits := strconv.FormatInt(int64(s.Core.Score), 10)
	n := int32(len(digits)) //#nosec G115 -- at most 11 digits
	for i, d := range digits {
		pos := n - 1 - int32(i) //#nosec G115 -- at most 11 digits
		out = append(out, core.Sprite{
			ID:    SpriteDigitPrefix + string(d),
			Color: s.Config.PlayerColor,
			X:     ScoreX - pos*DigitWidth,
			Y:     ScoreY + 1,
			W:     DigitWidth,
			H:     DigitHeight,
		})
	}
	return out
}
