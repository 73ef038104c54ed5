// Package config provides YAML-based simulation configuration loading and
// difficulty presets for the toybox platform.
package config

import "github.com/vovakirdan/tui-toybox/internal/core"

// AmidarConfig contains all tunable settings for the Amidar simulation.
type AmidarConfig struct {
	Seed             uint32        `yaml:"seed"`
	LevelDir         string        `yaml:"level_dir"` // empty = embedded level
	RenderImages     bool          `yaml:"render_images"`
	DefaultBoardBugs bool          `yaml:"default_board_bugs"`
	Rules            AmidarRules   `yaml:"rules"`
	Speeds           AmidarSpeeds  `yaml:"speeds"`
	Player           AmidarPlayer  `yaml:"player"`
	Colors           AmidarColors  `yaml:"colors"`
	Enemies          []EnemyConfig `yaml:"enemies"` // empty = one route follower per route
}

// AmidarRules defines lives, power-up timers and bonuses.
type AmidarRules struct {
	StartLives      int32  `yaml:"start_lives"`
	StartJumps      int32  `yaml:"start_jumps"`
	ChaseTime       int32  `yaml:"chase_time"` // ticks
	ChaseScoreBonus int32  `yaml:"chase_score_bonus"`
	JumpTime        int32  `yaml:"jump_time"` // ticks
	BoxBonus        int32  `yaml:"box_bonus"`
	HistoryLimit    uint32 `yaml:"history_limit"`
	StartLevel      int32  `yaml:"start_level"`
}

// AmidarSpeeds defines mob speeds in world units per tick.
type AmidarSpeeds struct {
	Player     int32 `yaml:"player"`
	EnemyStart int32 `yaml:"enemy_start"`
	Fixed      bool  `yaml:"fixed"` // enemies keep EnemyStart on every level
}

// AmidarPlayer defines where the player spawns.
type AmidarPlayer struct {
	StartX int32 `yaml:"start_x"`
	StartY int32 `yaml:"start_y"`
}

// AmidarColors defines the palette used in draw commands.
type AmidarColors struct {
	Background   core.RGB `yaml:"background"`
	Player       core.RGB `yaml:"player"`
	Unpainted    core.RGB `yaml:"unpainted"`
	Painted      core.RGB `yaml:"painted"`
	Enemy        core.RGB `yaml:"enemy"`
	InnerPainted core.RGB `yaml:"inner_painted"`
}

// EnemyConfig describes one enemy's movement policy.
// Kind is one of: lookup, perimeter, amidar, random, target.
type EnemyConfig struct {
	Kind   string `yaml:"kind"`
	Route  uint32 `yaml:"route"`   // lookup
	StartX int32  `yaml:"start_x"` // amidar, random, target
	StartY int32  `yaml:"start_y"` // amidar, random, target
	Dir    string `yaml:"dir"`     // random, target
	Vert   string `yaml:"vert"`    // amidar
	Horiz  string `yaml:"horiz"`   // amidar
	Vision int32  `yaml:"vision"`  // target
}
