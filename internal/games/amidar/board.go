package amidar

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

// Tile is one cell of the board.
type Tile uint8

const (
	Empty Tile = iota
	Unpainted
	ChaseMarker
	Painted
)

// ErrUnrecognizedChar is wrapped by ParseError.
var ErrUnrecognizedChar = errors.New("unrecognized board character")

// ErrEmptyBoard is returned when a board has no rows.
var ErrEmptyBoard = errors.New("board has no rows")

// ErrBentCorridor is returned when a corridor turns on a tile that is not a
// junction. Painting assumes junction-to-junction runs are straight.
var ErrBentCorridor = errors.New("corridor bends outside a junction")

// ParseError reports the first character a board could not be built from.
type ParseError struct {
	Char   rune
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("amidar: %v %q at line %d, column %d", ErrUnrecognizedChar, e.Char, e.Line+1, e.Column+1)
}

func (e *ParseError) Unwrap() error {
	return ErrUnrecognizedChar
}

// TileFromChar maps a level character to a tile.
func TileFromChar(c rune) (Tile, bool) {
	switch c {
	case '=':
		return Unpainted, true
	case 'p':
		return Painted, true
	case 'c':
		return ChaseMarker, true
	case ' ':
		return Empty, true
	default:
		return Empty, false
	}
}

// Walkable reports whether mobs may stand on the tile.
func (t Tile) Walkable() bool {
	return t != Empty
}

// NeedsPaint reports whether the tile still counts toward level completion.
func (t Tile) NeedsPaint() bool {
	return t == Unpainted || t == ChaseMarker
}

func (t Tile) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Unpainted:
		return "Unpainted"
	case ChaseMarker:
		return "ChaseMarker"
	case Painted:
		return "Painted"
	default:
		return "Unknown"
	}
}

func (t Tile) MarshalText() ([]byte, error) {
	if t > Painted {
		return nil, fmt.Errorf("amidar: invalid tile %d", t)
	}
	return []byte(t.String()), nil
}

func (t *Tile) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Empty":
		*t = Empty
	case "Unpainted":
		*t = Unpainted
	case "ChaseMarker":
		*t = ChaseMarker
	case "Painted":
		*t = Painted
	default:
		return fmt.Errorf("amidar: unknown tile %q", text)
	}
	return nil
}

// GridBox is a junction-bounded rectangle that pays a bonus once its whole
// perimeter is painted.
type GridBox struct {
	TopLeft       TilePoint `json:"top_left"`
	BottomRight   TilePoint `json:"bottom_right"`
	Painted       bool      `json:"painted"`
	TriggersChase bool      `json:"triggers_chase"`
}

// Matches reports whether the tile lies inside the rectangle, edges included.
func (b GridBox) Matches(t TilePoint) bool {
	return b.TopLeft.TX <= t.TX && t.TX <= b.BottomRight.TX &&
		b.TopLeft.TY <= t.TY && t.TY <= b.BottomRight.TY
}

// shouldUpdatePaint reports whether an unpainted box now has a fully painted perimeter.
func (b GridBox) shouldUpdatePaint(board *Board) bool {
	if b.Painted {
		return false
	}
	x1, x2 := b.TopLeft.TX, b.BottomRight.TX
	y1, y2 := b.TopLeft.TY, b.BottomRight.TY

	for x := x1; x <= x2; x++ {
		if !board.IsPainted(NewTilePoint(x, y1)) || !board.IsPainted(NewTilePoint(x, y2)) {
			return false
		}
	}
	for y := y1; y <= y2; y++ {
		if !board.IsPainted(NewTilePoint(x1, y)) || !board.IsPainted(NewTilePoint(x2, y)) {
			return false
		}
	}
	return true
}

// Board is the corridor grid with its derived junctions and boxes.
// Junctions and boxes are computed once at parse time.
type Board struct {
	Tiles          [][]Tile
	Width          uint32
	Height         uint32
	Junctions      map[uint32]struct{}
	ChaseJunctions map[uint32]struct{}
	Boxes          []GridBox
}

// ParseBoard builds a board from level text, one character per tile.
// Short rows are padded with empty tiles.
func ParseBoard(lines []string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("amidar: %w", ErrEmptyBoard)
	}

	width := 0
	tiles := make([][]Tile, len(lines))
	for y, line := range lines {
		row := make([]Tile, 0, len(line))
		col := 0
		for _, c := range line {
			t, ok := TileFromChar(c)
			if !ok {
				return nil, &ParseError{Char: c, Line: y, Column: col}
			}
			row = append(row, t)
			col++
		}
		tiles[y] = row
		width = max(width, len(row))
	}
	for y := range tiles {
		for len(tiles[y]) < width {
			tiles[y] = append(tiles[y], Empty)
		}
	}

	b := &Board{
		Tiles:          tiles,
		Width:          uint32(width),      //#nosec G115 -- row length
		Height:         uint32(len(tiles)), //#nosec G115 -- row count
		Junctions:      make(map[uint32]struct{}),
		ChaseJunctions: make(map[uint32]struct{}),
	}
	b.initJunctions()
	if err := b.checkStraightRuns(); err != nil {
		return nil, err
	}
	for _, id := range b.SortedJunctions() {
		if gb, ok := b.junctionCorners(id); ok {
			b.Boxes = append(b.Boxes, gb)
		}
	}
	return b, nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		Width:          b.Width,
		Height:         b.Height,
		Tiles:          make([][]Tile, len(b.Tiles)),
		Junctions:      maps.Clone(b.Junctions),
		ChaseJunctions: maps.Clone(b.ChaseJunctions),
		Boxes:          slices.Clone(b.Boxes),
	}
	for y, row := range b.Tiles {
		c.Tiles[y] = slices.Clone(row)
	}
	return c
}

// SortedJunctions returns junction ids in row-major order.
func (b *Board) SortedJunctions() []uint32 {
	ids := maps.Keys(b.Junctions)
	slices.Sort(ids)
	return ids
}

func (b *Board) initJunctions() {
	for y, row := range b.Tiles {
		for x, cell := range row {
			if !cell.Walkable() {
				continue
			}
			tp := NewTilePoint(int32(x), int32(y)) //#nosec G115 -- board indices
			walkable := 0
			for _, d := range core.Directions {
				if b.GetTile(tp.Step(d)).Walkable() {
					walkable++
				}
			}
			if walkable > 2 || b.IsCorner(tp.TX, tp.TY) {
				id := uint32(y)*b.Width + uint32(x) //#nosec G115 -- board indices
				b.Junctions[id] = struct{}{}
				if cell == ChaseMarker {
					b.ChaseJunctions[id] = struct{}{}
				}
			}
		}
	}
}

// checkStraightRuns rejects walkable non-junction tiles whose two open
// neighbours are not opposite each other.
func (b *Board) checkStraightRuns() error {
	for y, row := range b.Tiles {
		for x, cell := range row {
			if !cell.Walkable() {
				continue
			}
			id := uint32(y)*b.Width + uint32(x) //#nosec G115 -- board indices
			if _, j := b.Junctions[id]; j {
				continue
			}
			tp := NewTilePoint(int32(x), int32(y)) //#nosec G115 -- board indices
			var open []core.Direction
			for _, d := range core.Directions {
				if b.GetTile(tp.Step(d)).Walkable() {
					open = append(open, d)
				}
			}
			if len(open) == 2 && open[0].Opposite() != open[1] {
				return fmt.Errorf("amidar: %w at line %d, column %d", ErrBentCorridor, y+1, x+1)
			}
		}
	}
	return nil
}

// junctionNeighbor walks from source in the search direction and returns the
// first junction from which a step in the walkable direction is possible.
// The walk crosses empty tiles and only stops at the board edge.
func (b *Board) junctionNeighbor(source uint32, search, walkable core.Direction) (uint32, bool) {
	pos := b.LookupPosition(source)
	for {
		pos = pos.Step(search)
		id, ok := b.TileID(pos)
		if !ok {
			return 0, false
		}
		if _, j := b.Junctions[id]; j && b.GetTile(pos.Step(walkable)).Walkable() {
			return id, true
		}
	}
}

func (b *Board) junctionCorners(source uint32) (GridBox, bool) {
	rightID, ok := b.junctionNeighbor(source, core.Right, core.Down)
	if !ok {
		return GridBox{}, false
	}
	downID, ok := b.junctionNeighbor(source, core.Down, core.Right)
	if !ok {
		return GridBox{}, false
	}
	right := b.LookupPosition(rightID)
	down := b.LookupPosition(downID)

	corner, ok := b.TileID(NewTilePoint(right.TX, down.TY))
	if !ok {
		return GridBox{}, false
	}
	if _, j := b.Junctions[corner]; !j {
		return GridBox{}, false
	}
	_, chase := b.ChaseJunctions[source]
	return GridBox{
		TopLeft:       b.LookupPosition(source),
		BottomRight:   b.LookupPosition(corner),
		TriggersChase: chase,
	}, true
}

// TileID returns the row-major id of an on-board tile.
func (b *Board) TileID(t TilePoint) (uint32, bool) {
	if t.TX < 0 || t.TY < 0 || int64(t.TX) >= int64(b.Width) || int64(t.TY) >= int64(b.Height) {
		return 0, false
	}
	return uint32(t.TY)*b.Width + uint32(t.TX), true //#nosec G115 -- bounds checked above
}

// LookupPosition converts a tile id back into a coordinate.
func (b *Board) LookupPosition(id uint32) TilePoint {
	return NewTilePoint(int32(id%b.Width), int32(id/b.Width)) //#nosec G115 -- ids come from this board
}

// GetTile returns the tile at t, or Empty when t is off the board.
func (b *Board) GetTile(t TilePoint) Tile {
	if t.TY < 0 || int(t.TY) >= len(b.Tiles) {
		return Empty
	}
	row := b.Tiles[t.TY]
	if t.TX < 0 || int(t.TX) >= len(row) {
		return Empty
	}
	return row[t.TX]
}

// IsJunction reports whether t is a junction.
func (b *Board) IsJunction(t TilePoint) bool {
	_, ok := b.JunctionID(t)
	return ok
}

// JunctionID returns the tile id of t if it is a junction.
func (b *Board) JunctionID(t TilePoint) (uint32, bool) {
	id, ok := b.TileID(t)
	if !ok {
		return 0, false
	}
	_, ok = b.Junctions[id]
	return id, ok
}

// IsCorner reports whether (tx, ty) is one of the four board corners.
func (b *Board) IsCorner(tx, ty int32) bool {
	lastX := int32(b.Width) - 1  //#nosec G115 -- board dimensions
	lastY := int32(b.Height) - 1 //#nosec G115 -- board dimensions
	return (tx == 0 || tx == lastX) && (ty == 0 || ty == lastY)
}

// IsPainted reports whether t is a painted tile.
func (b *Board) IsPainted(t TilePoint) bool {
	return b.GetTile(t) == Painted
}

// CanMove returns the neighbour of t in direction d if it is walkable.
func (b *Board) CanMove(t TilePoint, d core.Direction) (TilePoint, bool) {
	next := t.Step(d)
	if b.GetTile(next).Walkable() {
		return next, true
	}
	return TilePoint{}, false
}

// IsLineOfSight reports whether p1 and p2 share a row or column joined by an
// unbroken walkable run.
func (b *Board) IsLineOfSight(p1, p2 TilePoint) bool {
	switch {
	case p1 == p2:
		return true
	case p1.TY == p2.TY:
		from, to := min(p1.TX, p2.TX), max(p1.TX, p2.TX)
		for x := from; x < to; x++ {
			if _, ok := b.CanMove(NewTilePoint(x, p1.TY), core.Right); !ok {
				return false
			}
		}
		return true
	case p1.TX == p2.TX:
		from, to := min(p1.TY, p2.TY), max(p1.TY, p2.TY)
		for y := from; y < to; y++ {
			if _, ok := b.CanMove(NewTilePoint(p1.TX, y), core.Down); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Perimeter lists the board edges t touches: at most one vertical edge
// (Up or Down) followed by at most one horizontal edge (Left or Right).
func (b *Board) Perimeter(t TilePoint) []core.Direction {
	lastX := int32(b.Width) - 1  //#nosec G115 -- board dimensions
	lastY := int32(b.Height) - 1 //#nosec G115 -- board dimensions

	var out []core.Direction
	if t.TY == 0 {
		out = append(out, core.Up)
	} else if t.TY == lastY {
		out = append(out, core.Down)
	}
	if t.TX == 0 {
		out = append(out, core.Left)
	} else if t.TX == lastX {
		out = append(out, core.Right)
	}
	return out
}

// Paint marks t painted and reports whether it changed.
func (b *Board) Paint(t TilePoint) bool {
	if !b.onBoard(t) {
		return false
	}
	if b.Tiles[t.TY][t.TX] == Painted {
		return false
	}
	b.Tiles[t.TY][t.TX] = Painted
	return true
}

func (b *Board) onBoard(t TilePoint) bool {
	_, ok := b.TileID(t)
	return ok
}

// BoardComplete reports whether no tile still needs paint.
func (b *Board) BoardComplete() bool {
	for _, row := range b.Tiles {
		for _, t := range row {
			if t.NeedsPaint() {
				return false
			}
		}
	}
	return true
}

// CountUnpainted counts walkable tiles that still need paint.
func (b *Board) CountUnpainted() int {
	n := 0
	for _, row := range b.Tiles {
		for _, t := range row {
			if t.Walkable() && t.NeedsPaint() {
				n++
			}
		}
	}
	return n
}

// ChaseBoxesPainted reports whether every chase-triggering box is painted.
func (b *Board) ChaseBoxesPainted() bool {
	for _, gb := range b.Boxes {
		if gb.TriggersChase && !gb.Painted {
			return false
		}
	}
	return true
}
