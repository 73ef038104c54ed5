package core

import "fmt"

// Direction is one of the four grid directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in canonical order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the (dx, dy) step for the direction. Y grows downward.
func (d Direction) Delta() (int32, int32) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if d > Right {
		return nil, fmt.Errorf("core: invalid direction %d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Up":
		*d = Up
	case "Down":
		*d = Down
	case "Left":
		*d = Left
	case "Right":
		*d = Right
	default:
		return fmt.Errorf("core: unknown direction %q", text)
	}
	return nil
}

// DirectionFromInput returns the first pressed direction, checking
// up, down, left, right in that order.
func DirectionFromInput(in Input) (Direction, bool) {
	switch {
	case in.Up:
		return Up, true
	case in.Down:
		return Down, true
	case in.Left:
		return Left, true
	case in.Right:
		return Right, true
	default:
		return Up, false
	}
}
