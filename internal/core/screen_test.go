package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'A')
	s.Set(3, 3, 'B')

	s.Resize(2, 2)
	if s.Get(1, 1) != 'A' {
		t.Errorf("expected content kept after shrink, got %q", s.Get(1, 1))
	}

	s.Resize(5, 5)
	if s.Get(4, 4) != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorDefault)
	s.DrawText(0, 1, "de", ColorDefault)

	want := "abc\nde "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestRasterize(t *testing.T) {
	s := NewScreen(10, 4)
	red := NewRGB(255, 0, 0)

	s.Rasterize([]Drawable{
		Clear{Color: Black()},
		Rectangle{Color: red, X: 4, Y: 5, W: 4, H: 5},
		Rectangle{Color: red, X: 33, Y: 0, W: 1, H: 1},
		Sprite{ID: "digit:7", Color: red, X: 20, Y: 15, W: 8, H: 7},
	}, 4, 5)

	if c := s.GetCell(1, 1); c.Rune != '█' || c.Color != ColorBrightRed {
		t.Errorf("rectangle cell = %+v", c)
	}
	if s.Get(0, 0) != ' ' || s.Get(2, 1) != ' ' {
		t.Error("rectangle leaked outside its cells")
	}
	if s.Get(8, 0) != '█' {
		t.Error("thin rectangle should still mark its cell")
	}
	if s.Get(5, 3) != '7' {
		t.Errorf("digit sprite = %q, expected '7'", s.Get(5, 3))
	}
	if strings.Count(s.String(), "█") != 2 {
		t.Errorf("unexpected rasterized output:\n%s", s.String())
	}
}

func TestFrameBounds(t *testing.T) {
	cmds := []Drawable{
		Clear{},
		Rectangle{X: 10, Y: 4, W: 6, H: 2},
		Sprite{ID: "player", X: 0, Y: 20, W: 7, H: 7},
	}

	w, h := FrameBounds(cmds)
	if w != 16 || h != 27 {
		t.Errorf("FrameBounds = %dx%d, want 16x27", w, h)
	}

	if w, h := FrameBounds(nil); w != 0 || h != 0 {
		t.Errorf("empty frame = %dx%d, want 0x0", w, h)
	}
}

func TestCellSize(t *testing.T) {
	tests := []struct {
		fw, fh, cols, rows int
		wantW, wantH       int
	}{
		{160, 240, 80, 24, 2, 10},
		{161, 240, 80, 24, 3, 10},
		{40, 10, 80, 24, 1, 1},
		{0, 0, 80, 24, 1, 1},
		{100, 100, 0, 0, 1, 1},
	}

	for _, tt := range tests {
		w, h := CellSize(tt.fw, tt.fh, tt.cols, tt.rows)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("CellSize(%d,%d,%d,%d) = %d,%d; want %d,%d",
				tt.fw, tt.fh, tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
		}
	}
}
