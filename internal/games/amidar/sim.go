package amidar

import (
	"fmt"

	"github.com/vovakirdan/tui-toybox/internal/config"
	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/registry"
)

// ID is the registry identifier of the simulation.
const ID = "amidar"

func init() {
	registry.Register(ID, "Amidar", func(opts registry.Options) (registry.Simulation, error) {
		return Load(opts)
	})
}

// Simulation creates Amidar games from one configuration.
type Simulation struct {
	cfg    *Config
	levels *LevelRegistry
}

// NewSimulation wraps a configuration and its level data.
func NewSimulation(cfg *Config, levels *LevelRegistry) *Simulation {
	return &Simulation{cfg: cfg, levels: levels}
}

// Load builds a simulation from YAML settings, a difficulty preset and
// optional level directory. Each simulation owns its LevelRegistry.
func Load(opts registry.Options) (*Simulation, error) {
	settings, err := config.LoadAmidar(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyAmidarPreset(&settings, preset)

	dir := opts.LevelDir
	if dir == "" {
		dir = settings.LevelDir
	}
	var levels *LevelRegistry
	if dir != "" {
		levels, err = LoadLevelRegistry(dir)
		// The start-segment quirk only matches the arcade board.
		settings.DefaultBoardBugs = false
	} else {
		levels, err = NewLevelRegistry()
	}
	if err != nil {
		return nil, fmt.Errorf("amidar: levels: %w", err)
	}

	cfg, err := ConfigFromSettings(settings, levels)
	if err != nil {
		return nil, fmt.Errorf("amidar: config: %w", err)
	}
	return NewSimulation(cfg, levels), nil
}

func (*Simulation) ID() string { return ID }
func (*Simulation) Title() string { return "Amidar" }

// Config returns the configuration new games start from.
func (s *Simulation) Config() *Config {
	return s.cfg
}

// LegalActions lists the ALE actions the game distinguishes.
func (s *Simulation) LegalActions() []core.AleAction {
	return s.cfg.LegalActions()
}

// QueryNames lists the queries every game answers.
func (s *Simulation) QueryNames() []string {
	return QueryNames()
}

// NewGame starts a game with the configuration reseeded from seed.
func (s *Simulation) NewGame(seed uint32) (registry.State, error) {
	cfg := s.cfg.Clone()
	cfg.ResetSeed(seed)
	st, err := NewGame(cfg, s.levels)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// StateFromJSON restores a game saved with ConfigJSON and ToJSON.
func (s *Simulation) StateFromJSON(configData, stateData []byte) (registry.State, error) {
	cfg, err := NewConfigFromJSON(configData)
	if err != nil {
		return nil, err
	}
	st, err := NewStateFromJSON(cfg, stateData, s.levels)
	if err != nil {
		return nil, err
	}
	return st, nil
}
