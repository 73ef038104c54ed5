package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('d'), &frame) {
		t.Fatal("d should not quit")
	}
	if !frame.Input().Right {
		t.Error("d should press right")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should quit")
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := newHeldKeys(3)
	h.press(core.ActionUp)

	for i := 0; i < 3; i++ {
		frame := core.NewInputFrame()
		h.apply(&frame)
		if !frame.Has(core.ActionUp) {
			t.Fatalf("tick %d: up should still be held", i)
		}
	}

	frame := core.NewInputFrame()
	h.apply(&frame)
	if frame.Has(core.ActionUp) {
		t.Error("up should be released after the hold expires")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := newHeldKeys(5)
	h.press(core.ActionLeft)
	h.press(core.ActionUp)
	h.press(core.ActionRight)

	frame := core.NewInputFrame()
	h.apply(&frame)
	in := frame.Input()
	if in.Left {
		t.Error("right should release left")
	}
	if !in.Right || !in.Up {
		t.Errorf("want up+right held, got %+v", in)
	}
}

func TestHeldKeysIgnoresNonDirections(t *testing.T) {
	h := newHeldKeys(5)
	h.press(core.ActionFire)

	frame := core.NewInputFrame()
	h.apply(&frame)
	if frame.Has(core.ActionFire) {
		t.Error("fire must not latch")
	}
}
