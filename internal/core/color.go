package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for screen cells.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB is a 24-bit color as emitted by simulations in draw commands.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// NewRGB builds an RGB value.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// Black is the zero RGB value.
func Black() RGB {
	return RGB{}
}

// Grayscale returns the luma byte of the color (ITU-R BT.601 weights).
func (c RGB) Grayscale() uint8 {
	y := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	return uint8(y) //#nosec G115 -- weighted mean of bytes fits in a byte
}

// paletteRGB holds approximate RGB values for the terminal palette.
var paletteRGB = []struct {
	color Color
	rgb   RGB
}{
	{ColorRed, RGB{205, 0, 0}},
	{ColorGreen, RGB{0, 205, 0}},
	{ColorYellow, RGB{205, 205, 0}},
	{ColorBlue, RGB{0, 0, 238}},
	{ColorMagenta, RGB{205, 0, 205}},
	{ColorCyan, RGB{0, 205, 205}},
	{ColorWhite, RGB{229, 229, 229}},
	{ColorBrightRed, RGB{255, 0, 0}},
	{ColorBrightGreen, RGB{0, 255, 0}},
	{ColorBrightYellow, RGB{255, 255, 0}},
	{ColorBrightBlue, RGB{92, 92, 255}},
	{ColorBrightMagenta, RGB{255, 0, 255}},
	{ColorBrightCyan, RGB{0, 255, 255}},
	{ColorBrightWhite, RGB{255, 255, 255}},
	{ColorOrange, RGB{255, 135, 0}},
	{ColorGray, RGB{128, 128, 128}},
}

// Nearest maps an RGB value onto the closest terminal palette entry.
// Black maps to ColorDefault.
func (c RGB) Nearest() Color {
	if c == (RGB{}) {
		return ColorDefault
	}
	best := ColorDefault
	bestDist := -1
	for _, p := range paletteRGB {
		dr := int(c.R) - int(p.rgb.R)
		dg := int(c.G) - int(p.rgb.G)
		db := int(c.B) - int(p.rgb.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.color, d
		}
	}
	return best
}
