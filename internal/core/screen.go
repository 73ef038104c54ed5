package core

import (
	"strconv"
	"strings"
)

// Cell is a single character position on the Screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer. Simulations never touch it directly;
// the platform rasterizes their draw commands into it.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < min(oldH, height); y++ {
		copy(s.cells[y], oldCells[y][:min(oldW, width)])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.Fill(' ', ColorDefault)
}

// Fill fills the entire screen with the given rune and color.
func (s *Screen) Fill(r rune, c Color) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r, Color: c}
		}
	}
}

// Set places a rune at the given position with the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Color: c})
		i++
	}
}

// DrawRect fills a rectangular area with the given cell.
func (s *Screen) DrawRect(r Rect, c Cell) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, c)
		}
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Rasterize paints draw commands onto the screen. Each character cell covers
// cellW x cellH pixels; a rectangle marks every cell it overlaps.
func (s *Screen) Rasterize(cmds []Drawable, cellW, cellH int) {
	if cellW <= 0 || cellH <= 0 {
		return
	}
	toCells := func(x, y, w, h int32) Rect {
		x0 := int(x) / cellW
		y0 := int(y) / cellH
		x1 := (int(x+w) + cellW - 1) / cellW
		y1 := (int(y+h) + cellH - 1) / cellH
		return NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
	}

	for _, cmd := range cmds {
		switch d := cmd.(type) {
		case Clear:
			s.Fill(' ', d.Color.Nearest())
		case Rectangle:
			s.DrawRect(toCells(d.X, d.Y, d.W, d.H), Cell{Rune: '█', Color: d.Color.Nearest()})
		case Sprite:
			if digit, ok := strings.CutPrefix(d.ID, "digit:"); ok {
				if n, err := strconv.Atoi(digit); err == nil && n >= 0 && n <= 9 {
					s.SetCell(int(d.X)/cellW, int(d.Y)/cellH, Cell{Rune: rune('0' + n), Color: d.Color.Nearest()})
				}
				continue
			}
			s.DrawRect(toCells(d.X, d.Y, d.W, d.H), Cell{Rune: spriteGlyph(d.ID), Color: d.Color.Nearest()})
		}
	}
}

func spriteGlyph(id string) rune {
	switch {
	case strings.HasPrefix(id, "player"):
		return '@'
	case strings.HasPrefix(id, "enemy"):
		return 'X'
	case strings.HasPrefix(id, "tile"):
		return '▒'
	default:
		return '█'
	}
}
