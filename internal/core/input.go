package core

import "fmt"

// Action represents a semantic platform action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - jump
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered during one platform frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Input converts the frame into controller state for a simulation.
func (f InputFrame) Input() Input {
	return Input{
		Left:    f.Has(ActionLeft),
		Right:   f.Has(ActionRight),
		Up:      f.Has(ActionUp),
		Down:    f.Has(ActionDown),
		Button1: f.Has(ActionFire),
	}
}

// Input is NES-style controller state: four directions and two buttons.
type Input struct {
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Up      bool `json:"up"`
	Down    bool `json:"down"`
	Button1 bool `json:"button1"`
	Button2 bool `json:"button2"`
}

// IsEmpty reports whether nothing is pressed.
func (in Input) IsEmpty() bool {
	return !in.Left && !in.Right && !in.Up && !in.Down && !in.Button1 && !in.Button2
}

// Fire reports whether either button is pressed.
func (in Input) Fire() bool {
	return in.Button1 || in.Button2
}

// AleAction is the Arcade Learning Environment action numbering.
type AleAction int

const (
	AleNoop AleAction = iota
	AleFire
	AleUp
	AleRight
	AleLeft
	AleDown
	AleUpRight
	AleUpLeft
	AleDownRight
	AleDownLeft
	AleUpFire
	AleRightFire
	AleLeftFire
	AleDownFire
	AleUpRightFire
	AleUpLeftFire
	AleDownRightFire
	AleDownLeftFire
)

var aleNames = [...]string{
	"NOOP", "FIRE", "UP", "RIGHT", "LEFT", "DOWN",
	"UPRIGHT", "UPLEFT", "DOWNRIGHT", "DOWNLEFT",
	"UPFIRE", "RIGHTFIRE", "LEFTFIRE", "DOWNFIRE",
	"UPRIGHTFIRE", "UPLEFTFIRE", "DOWNRIGHTFIRE", "DOWNLEFTFIRE",
}

// AleActionFromInt validates an integer action id.
func AleActionFromInt(x int) (AleAction, error) {
	if x < 0 || x >= len(aleNames) {
		return AleNoop, fmt.Errorf("core: unknown ALE action %d", x)
	}
	return AleAction(x), nil
}

// ParseAleAction looks up an action by its ALE name, e.g. "UPFIRE".
func ParseAleAction(name string) (AleAction, error) {
	for i, n := range aleNames {
		if n == name {
			return AleAction(i), nil
		}
	}
	return AleNoop, fmt.Errorf("core: unknown ALE action %q", name)
}

// String returns the ALE name.
func (a AleAction) String() string {
	if a < 0 || int(a) >= len(aleNames) {
		return "UNKNOWN"
	}
	return aleNames[a]
}

// Input returns the controller state the action stands for.
func (a AleAction) Input() Input {
	var in Input
	switch a {
	case AleFire:
		in.Button1 = true
	case AleUp:
		in.Up = true
	case AleRight:
		in.Right = true
	case AleLeft:
		in.Left = true
	case AleDown:
		in.Down = true
	case AleUpRight:
		in.Up, in.Right = true, true
	case AleUpLeft:
		in.Up, in.Left = true, true
	case AleDownRight:
		in.Down, in.Right = true, true
	case AleDownLeft:
		in.Down, in.Left = true, true
	case AleUpFire:
		in.Up, in.Button1 = true, true
	case AleRightFire:
		in.Right, in.Button1 = true, true
	case AleLeftFire:
		in.Left, in.Button1 = true, true
	case AleDownFire:
		in.Down, in.Button1 = true, true
	case AleUpRightFire:
		in.Up, in.Right, in.Button1 = true, true, true
	case AleUpLeftFire:
		in.Up, in.Left, in.Button1 = true, true, true
	case AleDownRightFire:
		in.Down, in.Right, in.Button1 = true, true, true
	case AleDownLeftFire:
		in.Down, in.Left, in.Button1 = true, true, true
	}
	return in
}
