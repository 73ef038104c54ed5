package core

import (
	"encoding/json"
	"testing"
)

func TestAleActionInput(t *testing.T) {
	tests := []struct {
		action AleAction
		want   Input
	}{
		{AleNoop, Input{}},
		{AleFire, Input{Button1: true}},
		{AleUp, Input{Up: true}},
		{AleDownLeft, Input{Down: true, Left: true}},
		{AleRightFire, Input{Right: true, Button1: true}},
		{AleUpLeftFire, Input{Up: true, Left: true, Button1: true}},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			if got := tc.action.Input(); got != tc.want {
				t.Errorf("Input() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestAleActionLookup(t *testing.T) {
	a, err := ParseAleAction("DOWNFIRE")
	if err != nil || a != AleDownFire || int(a) != 13 {
		t.Errorf("ParseAleAction(DOWNFIRE) = %d, %v", a, err)
	}
	if _, err := AleActionFromInt(18); err == nil {
		t.Error("expected error for out-of-range action")
	}
	if _, err := ParseAleAction("JUMP"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestInputFrameToInput(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionFire)

	in := f.Input()
	if !in.Left || !in.Button1 || in.Up || !in.Fire() {
		t.Errorf("unexpected input %+v", in)
	}

	f.Clear()
	if !f.Input().IsEmpty() {
		t.Error("cleared frame should produce empty input")
	}
}

func TestDirectionJSON(t *testing.T) {
	for _, d := range Directions {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("marshal %v: %v", d, err)
		}
		var back Direction
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != d {
			t.Errorf("round trip %v -> %s -> %v", d, data, back)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite is not an involution for %v", d)
		}
	}
	if got, _ := json.Marshal(Left); string(got) != `"Left"` {
		t.Errorf("Left encodes as %s", got)
	}
}

func TestDirectionFromInputPriority(t *testing.T) {
	d, ok := DirectionFromInput(Input{Left: true, Down: true})
	if !ok || d != Down {
		t.Errorf("DirectionFromInput = %v, %v; expected Down", d, ok)
	}
	if _, ok := DirectionFromInput(Input{}); ok {
		t.Error("empty input has no direction")
	}
}
