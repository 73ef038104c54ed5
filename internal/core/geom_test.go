package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if !r.Contains(2, 3) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(6, 3) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(2, 8) {
		t.Error("bottom edge is exclusive")
	}
}

func TestSignum(t *testing.T) {
	tests := []struct {
		in, want int32
	}{
		{-7, -1},
		{0, 0},
		{12, 1},
	}
	for _, tc := range tests {
		if got := Signum(tc.in); got != tc.want {
			t.Errorf("Signum(%d) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}

func TestAbsAndClamp(t *testing.T) {
	if Abs(-3) != 3 || Abs(4) != 4 {
		t.Error("Abs returned wrong value")
	}
	if Clamp(15, 0, 10) != 10 || Clamp(-1, 0, 10) != 0 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned wrong value")
	}
}
