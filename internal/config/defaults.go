package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

//go:embed defaults/amidar.yaml
var defaultAmidarYAML []byte

// DefaultAmidarConfig returns the default Amidar configuration.
func DefaultAmidarConfig() AmidarConfig {
	return AmidarConfig{
		Seed:             13,
		RenderImages:     true,
		DefaultBoardBugs: true,
		Rules: AmidarRules{
			StartLives:      3,
			StartJumps:      4,
			ChaseTime:       300,
			ChaseScoreBonus: 100,
			JumpTime:        75,
			BoxBonus:        50,
			HistoryLimit:    12,
			StartLevel:      1,
		},
		Speeds: AmidarSpeeds{
			Player:     8,
			EnemyStart: 10,
		},
		Player: AmidarPlayer{
			StartX: 31,
			StartY: 15,
		},
		Colors: AmidarColors{
			Background:   core.Black(),
			Player:       core.NewRGB(255, 255, 153),
			Unpainted:    core.NewRGB(148, 0, 211),
			Painted:      core.NewRGB(255, 255, 30),
			Enemy:        core.NewRGB(255, 50, 100),
			InnerPainted: core.NewRGB(255, 255, 0),
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a simulation.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "amidar":
		return defaultAmidarYAML
	default:
		return nil
	}
}
