// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, allowing the CLI and
// the transports to discover and instantiate them without hardcoded
// dependencies.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

// State is one running game. Implementations are single-threaded; callers
// that share a State across goroutines must serialize access.
type State interface {
	// UpdateMut advances the game by one tick.
	UpdateMut(in core.Input)

	// Lives returns the remaining lives. A negative value means game over.
	Lives() int

	Score() int
	Level() int
	GameOver() bool

	// Draw returns the frame as abstract draw commands in screen pixels.
	Draw() []core.Drawable

	// QueryJSON answers a named question about the state.
	QueryJSON(name string, args json.RawMessage) (string, error)

	// ToJSON and ConfigJSON serialize the state and its configuration.
	// Simulation.StateFromJSON reverses both.
	ToJSON() ([]byte, error)
	ConfigJSON() ([]byte, error)
}

// Simulation creates games of one kind.
type Simulation interface {
	// ID returns a unique identifier (e.g. "amidar"), used by the CLI and
	// for score storage.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// LegalActions lists the ALE actions the game distinguishes.
	LegalActions() []core.AleAction

	// QueryNames lists the names State.QueryJSON answers.
	QueryNames() []string

	// NewGame starts a game whose randomness derives from seed.
	NewGame(seed uint32) (State, error)

	// StateFromJSON restores a game from serialized configuration and state.
	StateFromJSON(config, state []byte) (State, error)
}

// Options tune a simulation at creation time. Zero values select defaults.
type Options struct {
	// ConfigPath overrides the YAML configuration search.
	ConfigPath string
	// Difficulty names a preset (easy, normal, hard, fixed).
	Difficulty string
	// LevelDir replaces the embedded level data.
	LevelDir string
}

// GameInfo contains metadata about a registered simulation.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a simulation.
type Factory func(opts Options) (Simulation, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry under title.
// Typically called from an init() function.
// Panics if a simulation with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered simulations, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a simulation by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, opts Options) (Simulation, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	sim, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return sim, nil
}

// Exists checks if a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
