package amidar

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-toybox/internal/config"
	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/random"
)

// Config is the immutable per-game configuration. NewGame clones it.
type Config struct {
	Rand               *random.Gen  `json:"rand"`
	Board              []string     `json:"board"`
	PlayerStart        TilePoint    `json:"player_start"`
	BgColor            core.RGB     `json:"bg_color"`
	PlayerColor        core.RGB     `json:"player_color"`
	UnpaintedColor     core.RGB     `json:"unpainted_color"`
	PaintedColor       core.RGB     `json:"painted_color"`
	EnemyColor         core.RGB     `json:"enemy_color"`
	InnerPaintedColor  core.RGB     `json:"inner_painted_color"`
	StartLives         int32        `json:"start_lives"`
	StartJumps         int32        `json:"start_jumps"`
	RenderImages       bool         `json:"render_images"`
	ChaseTime          int32        `json:"chase_time"`
	ChaseScoreBonus    int32        `json:"chase_score_bonus"`
	JumpTime           int32        `json:"jump_time"`
	BoxBonus           int32        `json:"box_bonus"`
	DefaultBoardBugs   bool         `json:"default_board_bugs"` // only valid with the default board
	Enemies            []MovementAI `json:"-"`
	Level              int32        `json:"level"`
	HistoryLimit       uint32       `json:"history_limit"`
	EnemyStartingSpeed int32        `json:"enemy_starting_speed"`
	EnemySpeedFixed    bool         `json:"enemy_speed_fixed,omitempty"`
	PlayerSpeed        int32        `json:"player_speed"`
}

// DefaultConfig returns the arcade-faithful configuration for levels.
func DefaultConfig(levels *LevelRegistry) *Config {
	cfg := &Config{
		Rand:               random.New(13),
		Board:              levels.DefaultLines(),
		PlayerStart:        NewTilePoint(31, 15),
		BgColor:            core.Black(),
		PlayerColor:        core.NewRGB(255, 255, 153),
		UnpaintedColor:     core.NewRGB(148, 0, 211),
		PaintedColor:       core.NewRGB(255, 255, 30),
		EnemyColor:         core.NewRGB(255, 50, 100),
		InnerPaintedColor:  core.NewRGB(255, 255, 0),
		StartLives:         3,
		StartJumps:         4,
		RenderImages:       true,
		ChaseTime:          10 * 30,
		ChaseScoreBonus:    100,
		JumpTime:           2*30 + 15,
		BoxBonus:           50,
		DefaultBoardBugs:   true,
		Level:              1,
		HistoryLimit:       12,
		EnemyStartingSpeed: 10,
		PlayerSpeed:        8,
	}
	for i := range levels.NumRoutes() {
		cfg.Enemies = append(cfg.Enemies, &EnemyLookupAI{DefaultRouteIndex: uint32(i)}) //#nosec G115 -- route count
	}
	return cfg
}

// ConfigFromSettings builds a Config from loaded YAML settings.
func ConfigFromSettings(s config.AmidarConfig, levels *LevelRegistry) (*Config, error) {
	cfg := DefaultConfig(levels)
	cfg.Rand = random.New(s.Seed)
	cfg.PlayerStart = NewTilePoint(s.Player.StartX, s.Player.StartY)
	cfg.BgColor = s.Colors.Background
	cfg.PlayerColor = s.Colors.Player
	cfg.UnpaintedColor = s.Colors.Unpainted
	cfg.PaintedColor = s.Colors.Painted
	cfg.EnemyColor = s.Colors.Enemy
	cfg.InnerPaintedColor = s.Colors.InnerPainted
	cfg.StartLives = s.Rules.StartLives
	cfg.StartJumps = s.Rules.StartJumps
	cfg.RenderImages = s.RenderImages
	cfg.ChaseTime = s.Rules.ChaseTime
	cfg.ChaseScoreBonus = s.Rules.ChaseScoreBonus
	cfg.JumpTime = s.Rules.JumpTime
	cfg.BoxBonus = s.Rules.BoxBonus
	cfg.DefaultBoardBugs = s.DefaultBoardBugs
	cfg.Level = max(s.Rules.StartLevel, 1)
	cfg.HistoryLimit = s.Rules.HistoryLimit
	cfg.EnemyStartingSpeed = s.Speeds.EnemyStart
	cfg.EnemySpeedFixed = s.Speeds.Fixed
	cfg.PlayerSpeed = s.Speeds.Player

	if len(s.Enemies) > 0 {
		cfg.Enemies = cfg.Enemies[:0]
		for i, e := range s.Enemies {
			ai, err := enemyFromSettings(e, levels)
			if err != nil {
				return nil, fmt.Errorf("enemy %d: %w", i, err)
			}
			cfg.Enemies = append(cfg.Enemies, ai)
		}
	}
	return cfg, nil
}

func enemyFromSettings(e config.EnemyConfig, levels *LevelRegistry) (MovementAI, error) {
	start := NewTilePoint(e.StartX, e.StartY)
	parseDir := func(name string, fallback core.Direction) (core.Direction, error) {
		if name == "" {
			return fallback, nil
		}
		var d core.Direction
		err := d.UnmarshalText([]byte(name))
		return d, err
	}

	switch e.Kind {
	case "lookup":
		if int(e.Route) >= levels.NumRoutes() {
			return nil, fmt.Errorf("route %d does not exist (have %d)", e.Route, levels.NumRoutes())
		}
		return &EnemyLookupAI{DefaultRouteIndex: e.Route}, nil
	case "perimeter":
		return &EnemyPerimeterAI{Start: start}, nil
	case "amidar":
		vert, err := parseDir(e.Vert, core.Down)
		if err != nil {
			return nil, err
		}
		horiz, err := parseDir(e.Horiz, core.Left)
		if err != nil {
			return nil, err
		}
		return &EnemyAmidarMvmt{Vert: vert, Horiz: horiz, StartVert: vert, StartHoriz: horiz, Start: start}, nil
	case "random":
		dir, err := parseDir(e.Dir, core.Left)
		if err != nil {
			return nil, err
		}
		return &EnemyRandomMvmt{Start: start, StartDir: dir, Dir: dir}, nil
	case "target":
		dir, err := parseDir(e.Dir, core.Left)
		if err != nil {
			return nil, err
		}
		return &EnemyTargetPlayer{Start: start, StartDir: dir, Dir: dir, VisionDistance: e.Vision}, nil
	default:
		return nil, fmt.Errorf("unknown enemy kind %q", e.Kind)
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Rand = c.Rand.Clone()
	out.Board = slices.Clone(c.Board)
	out.Enemies = make([]MovementAI, len(c.Enemies))
	for i, ai := range c.Enemies {
		out.Enemies[i] = ai.clone()
	}
	return &out
}

// ResetSeed reseeds the configuration's generator.
func (c *Config) ResetSeed(seed uint32) {
	c.Rand.ResetSeed(seed)
}

// Colors returns every color the simulation draws with.
func (c *Config) Colors() []core.RGB {
	return []core.RGB{
		c.BgColor,
		c.EnemyColor,
		c.InnerPaintedColor,
		c.PaintedColor,
		c.PlayerColor,
		c.UnpaintedColor,
	}
}

// LegalActions lists the ALE actions the game distinguishes, in ALE order.
func (c *Config) LegalActions() []core.AleAction {
	return []core.AleAction{
		core.AleNoop,
		core.AleFire,
		core.AleUp,
		core.AleRight,
		core.AleLeft,
		core.AleDown,
		core.AleUpFire,
		core.AleRightFire,
		core.AleLeftFire,
		core.AleDownFire,
	}
}

// enemySpeed returns the enemy speed for a level.
func (c *Config) enemySpeed(level int32) int32 {
	switch {
	case c.EnemySpeedFixed, level < 3:
		return c.EnemyStartingSpeed
	case level < 5:
		return c.EnemyStartingSpeed + 2
	default:
		return c.EnemyStartingSpeed + 4
	}
}

func (c *Config) playerHistoryCap() int {
	return max(int(c.HistoryLimit), 2)
}

func (c *Config) enemyHistoryCap() int {
	return int(c.HistoryLimit)
}
