package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

// KeyMapper translates Bubble Tea key messages to platform actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "x":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// IsDirection reports whether an action steers the player.
func IsDirection(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// opposite returns the direction that cancels a.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// heldKeys approximates key-up events, which terminals do not report.
// A direction stays pressed for a fixed number of ticks after its last
// key repeat; pressing the opposite direction releases it immediately.
type heldKeys struct {
	hold  int
	ticks map[core.Action]int
}

func newHeldKeys(hold int) heldKeys {
	return heldKeys{hold: max(hold, 1), ticks: make(map[core.Action]int)}
}

// press latches a direction.
func (h *heldKeys) press(a core.Action) {
	if !IsDirection(a) {
		return
	}
	delete(h.ticks, opposite(a))
	h.ticks[a] = h.hold
}

// apply marks every latched direction on the frame and ages the latches.
func (h *heldKeys) apply(frame *core.InputFrame) {
	for a, n := range h.ticks {
		frame.Set(a)
		if n <= 1 {
			delete(h.ticks, a)
		} else {
			h.ticks[a] = n - 1
		}
	}
}

func (h *heldKeys) release() {
	clear(h.ticks)
}
