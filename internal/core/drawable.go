package core

// Drawable is one abstract draw command emitted by a simulation.
// Commands are applied in order; later commands paint over earlier ones.
type Drawable interface {
	drawable()
}

// Clear fills the whole frame with a color.
type Clear struct {
	Color RGB `json:"color"`
}

// Rectangle fills an axis-aligned rectangle in screen pixels.
type Rectangle struct {
	Color RGB   `json:"color"`
	X     int32 `json:"x"`
	Y     int32 `json:"y"`
	W     int32 `json:"w"`
	H     int32 `json:"h"`
}

// Sprite places a named sprite whose top-left corner is at (X, Y).
// W and H give its footprint so text renderers can approximate it.
type Sprite struct {
	ID    string `json:"id"`
	Color RGB    `json:"color"`
	X     int32  `json:"x"`
	Y     int32  `json:"y"`
	W     int32  `json:"w"`
	H     int32  `json:"h"`
}

func (Clear) drawable()     {}
func (Rectangle) drawable() {}
func (Sprite) drawable()    {}

// FrameBounds returns the pixel extent covered by a list of draw commands.
func FrameBounds(cmds []Drawable) (w, h int) {
	for _, cmd := range cmds {
		switch d := cmd.(type) {
		case Rectangle:
			w = max(w, int(d.X+d.W))
			h = max(h, int(d.Y+d.H))
		case Sprite:
			w = max(w, int(d.X+d.W))
			h = max(h, int(d.Y+d.H))
		}
	}
	return w, h
}

// CellSize picks how many frame pixels one character cell covers so that a
// frameW x frameH frame fits into cols x rows characters.
func CellSize(frameW, frameH, cols, rows int) (cellW, cellH int) {
	cellW, cellH = 1, 1
	if cols > 0 && frameW > 0 {
		cellW = max((frameW+cols-1)/cols, 1)
	}
	if rows > 0 && frameH > 0 {
		cellH = max((frameH+rows-1)/rows, 1)
	}
	return cellW, cellH
}
