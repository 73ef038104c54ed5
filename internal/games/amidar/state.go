package amidar

import (
	"fmt"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/random"
)

// Junction pair of the first, pre-seeded segment on the default board.
// It is painted but never scored.
const (
	unscoredStartJunction uint32 = 607
	unscoredEndJunction   uint32 = 415
)

// Mode is the current power state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeChase
	ModeJump
)

func (m Mode) String() string {
	switch m {
	case ModeChase:
		return "chase"
	case ModeJump:
		return "jump"
	default:
		return "normal"
	}
}

// StateCore is the mutable, serializable part of a game.
type StateCore struct {
	Rand       *random.Gen `json:"rand"`
	Score      int32       `json:"score"`
	Lives      int32       `json:"lives"`
	Jumps      int32       `json:"jumps"`
	ChaseTimer int32       `json:"chase_timer"`
	JumpTimer  int32       `json:"jump_timer"`
	Player     *Mob        `json:"player"`
	Enemies    []*Mob      `json:"enemies"`
	Board      *Board      `json:"board"`
	Level      int32       `json:"level"`
}

// State is one running game: its configuration plus its evolving core.
type State struct {
	Config *Config
	Core   *StateCore

	levels *LevelRegistry
}

type collisionKind int

const (
	collisionMiss collisionKind = iota
	collisionPlayerDeath
	collisionEnemyCatch
)

type collision struct {
	kind  collisionKind
	enemy int
}

// NewGame starts a game from cfg. The game's generator is a child of
// cfg.Rand; cfg itself is not modified.
func NewGame(cfg *Config, levels *LevelRegistry) (*State, error) {
	board, err := levels.Board(cfg.Board)
	if err != nil {
		return nil, fmt.Errorf("amidar: new game: %w", err)
	}
	cfg = cfg.Clone()
	level := max(cfg.Level, 1)

	st := &StateCore{
		Rand:   random.NewChild(cfg.Rand),
		Lives:  cfg.StartLives,
		Jumps:  cfg.StartJumps,
		Level:  level,
		Board:  board,
		Player: NewPlayer(cfg.PlayerStart.ToWorld(), cfg.PlayerSpeed, cfg.playerHistoryCap()),
	}
	s := &State{Config: cfg, Core: st, levels: levels}

	env := s.env(nil)
	for _, ai := range cfg.Enemies {
		enemy := NewMob(ai.clone(), WorldPoint{}, cfg.enemySpeed(level), cfg.enemyHistoryCap())
		enemy.Reset(env, NewTilePoint(0, 0))
		st.Enemies = append(st.Enemies, enemy)
	}

	s.Reset()
	return s, nil
}

func (s *State) env(player *Mob) *moveEnv {
	return &moveEnv{
		board:  s.Core.Board,
		routes: s.levels.Routes(),
		player: player,
		rng:    s.Core.Rand,
	}
}

// Reset returns every mob to its start position with empty history.
// Score, lives, timers and the board are untouched.
func (s *State) Reset() {
	env := s.env(nil)
	s.Core.Player.Reset(env, s.Config.PlayerStart)
	// On the default board the player starts as if coming up from below, so
	// the first move up paints the segment above the start tile.
	if s.Config.DefaultBoardBugs {
		if id, ok := s.Core.Board.JunctionID(NewTilePoint(31, 18)); ok {
			s.Core.Player.History.PushFront(id)
		}
	}
	for _, e := range s.Core.Enemies {
		e.Reset(env, s.Config.PlayerStart)
	}
}

// Lives returns the remaining lives; negative means game over.
func (s *State) Lives() int {
	return int(s.Core.Lives)
}

// Score returns the current score.
func (s *State) Score() int {
	return int(s.Core.Score)
}

// Level returns the current level, starting at 1.
func (s *State) Level() int {
	return int(s.Core.Level)
}

// GameOver reports whether the player has run out of lives.
func (s *State) GameOver() bool {
	return s.Core.Lives < 0
}

// Mode returns the active power state. Chase takes priority over jump.
func (s *State) Mode() Mode {
	switch {
	case s.Core.ChaseTimer > 0:
		return ModeChase
	case s.Core.JumpTimer > 0:
		return ModeJump
	default:
		return ModeNormal
	}
}

// UpdateMut advances the game by one tick.
func (s *State) UpdateMut(in core.Input) {
	st := s.Core
	cfg := s.Config
	preUpdateScore := st.Score
	historyLimit := int(cfg.HistoryLimit)

	if update := st.Player.Update(in, s.env(nil), historyLimit); update != nil {
		allowScore := true
		if cfg.DefaultBoardBugs && update.Junctions != nil &&
			update.Junctions[0] == unscoredStartJunction && update.Junctions[1] == unscoredEndJunction {
			allowScore = false
		}
		if allowScore {
			st.Score += update.Points(cfg.BoxBonus)
		}
		if update.TriggersChase {
			st.ChaseTimer = cfg.ChaseTime
		}
	}

	switch {
	case st.ChaseTimer > 0:
		st.ChaseTimer--
	case st.JumpTimer > 0:
		st.JumpTimer--
	case in.Fire() && st.Jumps > 0:
		st.JumpTimer = cfg.JumpTime
		st.Jumps--
	}

	events := s.scanCollisions(nil)

	snapshot := st.Player.Clone()
	enemyEnv := s.env(snapshot)
	for _, e := range st.Enemies {
		e.Update(core.Input{}, enemyEnv, historyLimit)
	}

	events = s.scanCollisions(events)

	dead := false
	for _, ev := range events {
		if ev.kind == collisionPlayerDeath {
			dead = true
			break
		}
		if enemy := st.Enemies[ev.enemy]; !enemy.Caught {
			st.Score += cfg.ChaseScoreBonus
			enemy.Caught = true
		}
	}

	if dead {
		st.Jumps = cfg.StartJumps
		st.Lives--
		st.Score = preUpdateScore
		s.Reset()
		return
	}

	if st.Board.BoardComplete() {
		s.advanceLevel()
	}
}

func (s *State) advanceLevel() {
	st := s.Core
	s.Reset()
	st.Level++
	st.ChaseTimer = 0

	board, err := s.levels.Board(s.Config.Board)
	if err != nil {
		// The board parsed when the game was created.
		board = s.levels.DefaultBoard()
	}
	st.Board = board

	if st.Lives < s.Config.StartLives {
		st.Lives++
	}
	speed := s.Config.enemySpeed(st.Level)
	for _, e := range st.Enemies {
		e.Speed = speed
	}
}

// scanCollisions appends every non-miss collision to events.
func (s *State) scanCollisions(events []collision) []collision {
	playerTile := s.Core.Player.Tile()
	for i, e := range s.Core.Enemies {
		if c := s.collide(e, i, playerTile); c.kind != collisionMiss {
			events = append(events, c)
		}
	}
	return events
}

func (s *State) collide(enemy *Mob, id int, playerTile TilePoint) collision {
	if enemy.Tile() != playerTile {
		return collision{kind: collisionMiss}
	}
	switch {
	case s.Core.ChaseTimer > 0 && !enemy.Caught:
		return collision{kind: collisionEnemyCatch, enemy: id}
	case s.Core.ChaseTimer > 0:
		return collision{kind: collisionMiss}
	case s.Core.JumpTimer > 0:
		return collision{kind: collisionMiss}
	default:
		return collision{kind: collisionPlayerDeath}
	}
}
