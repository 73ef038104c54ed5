package amidar

import "github.com/vovakirdan/tui-toybox/internal/core"

// Screen layout, in screen pixels.
const (
	GameWidth    int32 = 160
	GameHeight   int32 = 250
	BoardOffsetX int32 = 16
	BoardOffsetY int32 = 37
	PlayerSize   int32 = 7
	EnemySize    int32 = 7
	TileWidth    int32 = 4
	TileHeight   int32 = 5

	LivesY     int32 = 198
	LivesX     int32 = 148
	LivesXStep int32 = 16
	ScoreY     int32 = 198
	ScoreX     int32 = LivesX - LivesXStep*3 - 8

	DigitWidth  int32 = 8
	DigitHeight int32 = 7
)

// Scale is the number of world units per screen pixel.
const Scale int32 = 16

// World-space size of one tile.
const (
	WorldTileWidth  = TileWidth * Scale
	WorldTileHeight = TileHeight * Scale
)

// ScreenPoint is a position in screen pixels.
type ScreenPoint struct {
	SX int32
	SY int32
}

// WorldPoint is a sub-tile position used for smooth motion.
type WorldPoint struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// TilePoint is a board grid coordinate.
type TilePoint struct {
	TX int32 `json:"tx"`
	TY int32 `json:"ty"`
}

// NewTilePoint builds a TilePoint.
func NewTilePoint(tx, ty int32) TilePoint {
	return TilePoint{TX: tx, TY: ty}
}

// ToScreen converts to screen pixels.
func (w WorldPoint) ToScreen() ScreenPoint {
	return ScreenPoint{SX: w.X / Scale, SY: w.Y / Scale}
}

// ToTile converts to the containing tile. Negative coordinates are shifted
// down by one tile after truncating division.
func (w WorldPoint) ToTile() TilePoint {
	tx := w.X / WorldTileWidth
	ty := w.Y / WorldTileHeight
	if w.X < 0 {
		tx--
	}
	if w.Y < 0 {
		ty--
	}
	return TilePoint{TX: tx, TY: ty}
}

// ToWorld returns the world position of the tile's top-left corner.
func (t TilePoint) ToWorld() WorldPoint {
	return WorldPoint{X: t.TX * WorldTileWidth, Y: t.TY * WorldTileHeight}
}

// Translate offsets the tile.
func (t TilePoint) Translate(dx, dy int32) TilePoint {
	return TilePoint{TX: t.TX + dx, TY: t.TY + dy}
}

// Step moves one tile in the given direction.
func (t TilePoint) Step(d core.Direction) TilePoint {
	dx, dy := d.Delta()
	return t.Translate(dx, dy)
}

// ManhattanDist returns |dx| + |dy|.
func (t TilePoint) ManhattanDist(o TilePoint) int32 {
	return core.Abs(t.TX-o.TX) + core.Abs(t.TY-o.TY)
}
