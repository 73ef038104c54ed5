package amidar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// DecodeError reports persisted state or configuration that could not be
// restored.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("amidar: decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrUnknownAI is returned for a movement policy tag that does not exist.
var ErrUnknownAI = errors.New("unknown movement policy")

// Movement policies are externally tagged: the player is the bare string
// "Player", every enemy is an object with a single key naming its kind.

func marshalAI(ai MovementAI) ([]byte, error) {
	if _, ok := ai.(*PlayerAI); ok {
		return json.Marshal(ai.kind())
	}
	return json.Marshal(map[string]MovementAI{ai.kind(): ai})
}

func unmarshalAI(data []byte) (MovementAI, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, err
		}
		if tag != "Player" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAI, tag)
		}
		return &PlayerAI{}, nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, err
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("movement policy must have exactly one tag, got %d", len(tagged))
	}
	for tag, body := range tagged {
		ai, err := newAI(tag)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, ai); err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		return ai, nil
	}
	return nil, ErrUnknownAI
}

func newAI(tag string) (MovementAI, error) {
	switch tag {
	case "Player":
		return &PlayerAI{}, nil
	case "EnemyLookupAI":
		return &EnemyLookupAI{}, nil
	case "EnemyPerimeterAI":
		return &EnemyPerimeterAI{}, nil
	case "EnemyAmidarMvmt":
		return &EnemyAmidarMvmt{}, nil
	case "EnemyRandomMvmt":
		return &EnemyRandomMvmt{}, nil
	case "EnemyTargetPlayer":
		return &EnemyTargetPlayer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAI, tag)
	}
}

// MarshalJSON encodes the configuration with tagged enemy policies.
func (c *Config) MarshalJSON() ([]byte, error) {
	type plain Config
	enemies := make([]json.RawMessage, 0, len(c.Enemies))
	for _, ai := range c.Enemies {
		data, err := marshalAI(ai)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, data)
	}
	return json.Marshal(struct {
		*plain
		Enemies []json.RawMessage `json:"enemies"`
	}{plain: (*plain)(c), Enemies: enemies})
}

// UnmarshalJSON decodes a configuration produced by MarshalJSON.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Enemies []json.RawMessage `json:"enemies"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Enemies = make([]MovementAI, 0, len(aux.Enemies))
	for i, raw := range aux.Enemies {
		ai, err := unmarshalAI(raw)
		if err != nil {
			return fmt.Errorf("enemy %d: %w", i, err)
		}
		c.Enemies = append(c.Enemies, ai)
	}
	return nil
}

type mobJSON struct {
	AI       json.RawMessage `json:"ai"`
	Position WorldPoint      `json:"position"`
	Step     *TilePoint      `json:"step"`
	Caught   bool            `json:"caught"`
	Speed    int32           `json:"speed"`
	History  *History        `json:"history"`
}

// MarshalJSON encodes the mob with its tagged movement policy.
func (m *Mob) MarshalJSON() ([]byte, error) {
	ai, err := marshalAI(m.AI)
	if err != nil {
		return nil, err
	}
	return json.Marshal(mobJSON{
		AI:       ai,
		Position: m.Position,
		Step:     m.Step,
		Caught:   m.Caught,
		Speed:    m.Speed,
		History:  m.History,
	})
}

// UnmarshalJSON decodes a mob produced by MarshalJSON.
func (m *Mob) UnmarshalJSON(data []byte) error {
	raw := mobJSON{History: NewHistory(0)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ai, err := unmarshalAI(raw.AI)
	if err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if raw.History == nil {
		raw.History = NewHistory(0)
	}
	*m = Mob{
		AI:       ai,
		Position: raw.Position,
		Step:     raw.Step,
		Caught:   raw.Caught,
		Speed:    raw.Speed,
		History:  raw.History,
	}
	return nil
}

type boardJSON struct {
	Tiles          [][]Tile  `json:"tiles"`
	Width          uint32    `json:"width"`
	Height         uint32    `json:"height"`
	Junctions      []uint32  `json:"junctions"`
	ChaseJunctions []uint32  `json:"chase_junctions"`
	Boxes          []GridBox `json:"boxes"`
}

// MarshalJSON encodes the board with junction sets as sorted arrays.
func (b *Board) MarshalJSON() ([]byte, error) {
	chase := maps.Keys(b.ChaseJunctions)
	slices.Sort(chase)
	return json.Marshal(boardJSON{
		Tiles:          b.Tiles,
		Width:          b.Width,
		Height:         b.Height,
		Junctions:      b.SortedJunctions(),
		ChaseJunctions: chase,
		Boxes:          b.Boxes,
	})
}

// UnmarshalJSON decodes a board produced by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if uint64(len(raw.Tiles)) != uint64(raw.Height) {
		return fmt.Errorf("board has %d rows, want %d", len(raw.Tiles), raw.Height)
	}
	for y, row := range raw.Tiles {
		if uint64(len(row)) != uint64(raw.Width) {
			return fmt.Errorf("board row %d has %d tiles, want %d", y, len(row), raw.Width)
		}
	}
	*b = Board{
		Tiles:          raw.Tiles,
		Width:          raw.Width,
		Height:         raw.Height,
		Junctions:      make(map[uint32]struct{}, len(raw.Junctions)),
		ChaseJunctions: make(map[uint32]struct{}, len(raw.ChaseJunctions)),
		Boxes:          raw.Boxes,
	}
	for _, id := range raw.Junctions {
		b.Junctions[id] = struct{}{}
	}
	for _, id := range raw.ChaseJunctions {
		b.ChaseJunctions[id] = struct{}{}
	}
	return b.checkStraightRuns()
}

// ToJSON serializes the mutable game state.
func (s *State) ToJSON() ([]byte, error) {
	return json.Marshal(s.Core)
}

// ConfigJSON serializes the game's configuration.
func (s *State) ConfigJSON() ([]byte, error) {
	return json.Marshal(s.Config)
}

// NewConfigFromJSON decodes a configuration produced by ConfigJSON.
func NewConfigFromJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &DecodeError{What: "config", Err: err}
	}
	if cfg.Rand == nil {
		return nil, &DecodeError{What: "config", Err: errors.New("missing rand")}
	}
	return &cfg, nil
}

// NewStateFromJSON restores a game from its configuration and a state
// produced by ToJSON.
func NewStateFromJSON(cfg *Config, data []byte, levels *LevelRegistry) (*State, error) {
	var st StateCore
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &DecodeError{What: "state", Err: err}
	}
	if st.Rand == nil || st.Player == nil || st.Board == nil {
		return nil, &DecodeError{What: "state", Err: errors.New("missing rand, player or board")}
	}
	if !st.Player.IsPlayer() {
		return nil, &DecodeError{What: "state", Err: errors.New("player mob is not input driven")}
	}

	cfg = cfg.Clone()
	st.Player.History.Resize(max(cfg.playerHistoryCap(), st.Player.History.Len()))
	for i, e := range st.Enemies {
		if e == nil {
			return nil, &DecodeError{What: "state", Err: fmt.Errorf("enemy %d is null", i)}
		}
		e.History.Resize(max(cfg.enemyHistoryCap(), e.History.Len()))
	}
	return &State{Config: cfg, Core: &st, levels: levels}, nil
}
