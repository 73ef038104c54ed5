package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyAmidarPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values; fixed also stops enemies speeding up.
func ApplyAmidarPreset(cfg *AmidarConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.StartLives = 5
		cfg.Rules.StartJumps = 6
		cfg.Rules.ChaseTime = 450
		cfg.Speeds.EnemyStart = 8
	case DifficultyHard:
		cfg.Rules.StartLives = 2
		cfg.Rules.StartJumps = 2
		cfg.Rules.ChaseTime = 200
		cfg.Speeds.EnemyStart = 12
	case DifficultyFixed:
		cfg.Speeds.Fixed = true
	}
}
