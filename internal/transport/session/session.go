// Package session keeps running games addressable by ID for the network
// transports. Simulation states are single-threaded, so every Session
// serializes access to its state behind a mutex.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/storage"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrGameMismatch         = errors.New("saved game belongs to another simulation")
)

// Summary is the public snapshot of a session after a call.
type Summary struct {
	ID       string `json:"session_id"`
	Game     string `json:"game"`
	Seed     uint32 `json:"seed"`
	Ticks    int    `json:"ticks"`
	Score    int    `json:"score"`
	Lives    int    `json:"lives"`
	Level    int    `json:"level"`
	GameOver bool   `json:"game_over"`
}

// Session is one running game.
type Session struct {
	ID        string
	CreatedAt time.Time

	gameID string
	mu     sync.Mutex
	state  registry.State
	seed   uint32
	ticks  int
}

func (s *Session) summaryLocked() Summary {
	return Summary{
		ID:       s.ID,
		Game:     s.gameID,
		Seed:     s.seed,
		Ticks:    s.ticks,
		Score:    s.state.Score(),
		Lives:    s.state.Lives(),
		Level:    s.state.Level(),
		GameOver: s.state.GameOver(),
	}
}

// Summary returns the current snapshot.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Step applies actions one tick each. Steps after game over are dropped.
func (s *Session) Step(actions []core.AleAction) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range actions {
		if s.state.GameOver() {
			break
		}
		s.state.UpdateMut(a.Input())
		s.ticks++
	}
	return s.summaryLocked()
}

// Query runs a named query against the state.
func (s *Session) Query(name string, args json.RawMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.QueryJSON(name, args)
}

// Frame returns the draw commands for the current state.
func (s *Session) Frame() []core.Drawable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Draw()
}

// Snapshot serializes the configuration and state.
func (s *Session) Snapshot() (config, state []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if config, err = s.state.ConfigJSON(); err != nil {
		return nil, nil, err
	}
	if state, err = s.state.ToJSON(); err != nil {
		return nil, nil, err
	}
	return config, state, nil
}

// Render rasterizes the current frame to plain text of at most cols x rows.
func (s *Session) Render(cols, rows int) string {
	cmds := s.Frame()
	fw, fh := core.FrameBounds(cmds)
	cellW, cellH := core.CellSize(fw, fh, cols, rows)

	screen := core.NewScreen((fw+cellW-1)/cellW, (fh+cellH-1)/cellH)
	screen.Rasterize(cmds, cellW, cellH)
	return screen.String()
}

// Manager tracks the sessions of one simulation.
type Manager struct {
	sim      registry.Simulation
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates a manager for sim.
func NewManager(sim registry.Simulation) *Manager {
	return &Manager{
		sim:      sim,
		sessions: make(map[string]*Session),
	}
}

// Simulation returns the simulation sessions are created from.
func (m *Manager) Simulation() registry.Simulation {
	return m.sim
}

// Create starts a new game under id. An empty id picks a random one.
func (m *Manager) Create(id string, seed uint32) (*Session, error) {
	st, err := m.sim.NewGame(seed)
	if err != nil {
		return nil, fmt.Errorf("session: new game: %w", err)
	}
	return m.add(id, st, seed)
}

// Restore starts a session from serialized configuration and state.
func (m *Manager) Restore(id string, config, state []byte) (*Session, error) {
	st, err := m.sim.StateFromJSON(config, state)
	if err != nil {
		return nil, fmt.Errorf("session: restore: %w", err)
	}
	return m.add(id, st, 0)
}

func (m *Manager) add(id string, st registry.State, seed uint32) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateIDLocked()
	}
	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyExists, id)
	}

	s := &Session{
		ID:        key,
		CreatedAt: time.Now(),
		gameID:    m.sim.ID(),
		state:     st,
		seed:      seed,
	}
	m.sessions[key] = s
	return s, nil
}

// Get returns a session by ID (case-insensitive).
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	result := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, ok := m.sessions[key]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, key)
	return nil
}

// Save writes a session into the store's named save slot.
func (m *Manager) Save(store *storage.Store, id, name string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	config, state, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("session: snapshot: %w", err)
	}
	return store.SaveState(storage.SavedState{
		Name:   name,
		GameID: m.sim.ID(),
		Config: config,
		State:  state,
	})
}

// Load restores a named save as a new session.
func (m *Manager) Load(store *storage.Store, name, id string) (*Session, error) {
	save, err := store.LoadState(name)
	if err != nil {
		return nil, err
	}
	if save.GameID != m.sim.ID() {
		return nil, fmt.Errorf("%w: %q is %s", ErrGameMismatch, name, save.GameID)
	}
	return m.Restore(id, save.Config, save.State)
}

// generateIDLocked returns 4 hex characters not yet in use.
func (m *Manager) generateIDLocked() string {
	buf := make([]byte, 2)
	for {
		//nolint:errcheck // crypto/rand.Read never fails on supported platforms
		rand.Read(buf)
		id := hex.EncodeToString(buf)
		if _, exists := m.sessions[id]; !exists {
			return id
		}
	}
}
