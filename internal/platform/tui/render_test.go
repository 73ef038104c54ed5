package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorDefault)
	s.DrawText(0, 1, "xy", core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") || !strings.Contains(out, "xy") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestRenderHUD(t *testing.T) {
	hud := RenderHUD("Amidar", core.GameState{Score: 120, Lives: 2, Level: 3}, 0)
	for _, want := range []string{"Amidar", "SCORE 120", "LEVEL 3", "LIVES 2"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	over := RenderHUD("Amidar", core.GameState{Lives: -1, GameOver: true}, 0)
	if !strings.Contains(over, "GAME OVER") || !strings.Contains(over, "LIVES 0") {
		t.Errorf("game over HUD = %q", over)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText overflow = %q", got)
	}
}
