package amidar

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Query errors. Wrapped errors carry the offending name or argument.
var (
	ErrNoSuchQuery           = errors.New("no such query")
	ErrBadInputArg           = errors.New("bad input argument")
	ErrInternalSerialization = errors.New("internal serialization error")
)

type queryFunc func(s *State, args json.RawMessage) (any, error)

var queries = map[string]queryFunc{
	"world_to_tile": func(_ *State, args json.RawMessage) (any, error) {
		var w WorldPoint
		if err := decodeArgs(args, &w); err != nil {
			return nil, err
		}
		t := w.ToTile()
		return [2]int32{t.TX, t.TY}, nil
	},
	"tile_to_world": func(_ *State, args json.RawMessage) (any, error) {
		var t TilePoint
		if err := decodeArgs(args, &t); err != nil {
			return nil, err
		}
		w := t.ToWorld()
		return [2]int32{w.X, w.Y}, nil
	},
	"num_tiles_unpainted": func(s *State, _ json.RawMessage) (any, error) {
		return s.Core.Board.CountUnpainted(), nil
	},
	"regular_mode": func(s *State, _ json.RawMessage) (any, error) {
		return s.Core.ChaseTimer == 0 && s.Core.JumpTimer == 0, nil
	},
	"jump_mode": func(s *State, _ json.RawMessage) (any, error) {
		return s.Core.JumpTimer > 0, nil
	},
	"chase_mode": func(s *State, _ json.RawMessage) (any, error) {
		return s.Core.ChaseTimer > 0, nil
	},
	"jumps_remaining": func(s *State, _ json.RawMessage) (any, error) {
		return s.Core.Jumps > 0, nil
	},
	"num_enemies": func(s *State, _ json.RawMessage) (any, error) {
		return len(s.Core.Enemies), nil
	},
	"enemy_tiles": func(s *State, _ json.RawMessage) (any, error) {
		tiles := make([][2]int32, 0, len(s.Core.Enemies))
		for _, e := range s.Core.Enemies {
			t := e.Tile()
			tiles = append(tiles, [2]int32{t.TX, t.TY})
		}
		return tiles, nil
	},
	"enemy_tile": func(s *State, args json.RawMessage) (any, error) {
		e, err := s.enemyArg(args)
		if err != nil {
			return nil, err
		}
		t := e.Tile()
		return [2]int32{t.TX, t.TY}, nil
	},
	"enemy_caught": func(s *State, args json.RawMessage) (any, error) {
		e, err := s.enemyArg(args)
		if err != nil {
			return nil, err
		}
		return e.Caught, nil
	},
	"player_tile": func(s *State, _ json.RawMessage) (any, error) {
		t := s.Core.Player.Tile()
		return [2]int32{t.TX, t.TY}, nil
	},
}

// QueryNames lists the supported query names in sorted order.
func QueryNames() []string {
	names := maps.Keys(queries)
	slices.Sort(names)
	return names
}

// QueryJSON answers a named read-only question about the state with a JSON
// document.
func (s *State) QueryJSON(name string, args json.RawMessage) (string, error) {
	q, ok := queries[name]
	if !ok {
		return "", fmt.Errorf("amidar: %w: %q", ErrNoSuchQuery, name)
	}
	v, err := q(s, args)
	if err != nil {
		return "", fmt.Errorf("amidar: query %s: %w", name, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("amidar: query %s: %w: %v", name, ErrInternalSerialization, err)
	}
	return string(out), nil
}

func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing argument", ErrBadInputArg)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadInputArg, err)
	}
	return nil
}

func (s *State) enemyArg(args json.RawMessage) (*Mob, error) {
	var i uint64
	if err := decodeArgs(args, &i); err != nil {
		return nil, err
	}
	if i >= uint64(len(s.Core.Enemies)) {
		return nil, fmt.Errorf("%w: enemy %d of %d", ErrBadInputArg, i, len(s.Core.Enemies))
	}
	return s.Core.Enemies[i], nil
}
