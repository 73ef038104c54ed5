package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/storage"
)

// QuicksaveName is the save slot written by the quicksave key.
const QuicksaveName = "quicksave"

// defaultHoldTicks is how long a direction stays pressed after a key event.
// Terminal key repeat fires roughly every 30-50ms, so this bridges the gaps
// at 60 ticks per second.
const defaultHoldTicks = 8

// Model is the Bubble Tea model for playing one simulation.
type Model struct {
	sim        registry.Simulation
	state      registry.State
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       heldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	seed       uint32
	ticks      int
	status     string
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a model running a fresh game of sim.
// A zero seed in cfg picks a time-based one.
func NewModel(sim registry.Simulation, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().UnixNano()) //#nosec G115 -- truncation is fine for a seed
	}

	st, err := sim.NewGame(cfg.Seed)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sim:        sim,
		state:      st,
		screen:     core.NewScreen(cfg.ScreenW, playfieldRows(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       newHeldKeys(defaultHoldTicks),
		inputFrame: core.NewInputFrame(),
		seed:       cfg.Seed,
	}
	m.gameState = m.snapshot()
	return m, nil
}

// WithState swaps in a restored game, e.g. one loaded from a save.
func (m Model) WithState(st registry.State) Model {
	m.state = st
	m.scoreSaved = false
	m.gameState = m.snapshot()
	return m
}

// playfieldRows leaves the last terminal row for the HUD.
func playfieldRows(screenH int) int {
	return max(screenH-1, 1)
}

func (m Model) snapshot() core.GameState {
	return core.GameState{
		Score:    m.state.Score(),
		Lives:    m.state.Lives(),
		Level:    m.state.Level(),
		GameOver: m.state.GameOver(),
		Paused:   m.gameState.Paused,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "f5":
		m.quicksave()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsDirection(action):
		m.held.press(action)
	case action == core.ActionFire:
		m.inputFrame.Set(core.ActionFire)
	case action == core.ActionPause, action == core.ActionBack:
		if !m.gameState.GameOver {
			m.gameState.Paused = !m.gameState.Paused
			m.held.release()
		}
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			return m.restart()
		}
	}

	return m, nil
}

// restart begins a new game with a fresh seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.seed = uint32(time.Now().UnixNano()) //#nosec G115 -- truncation is fine for a seed
	st, err := m.sim.NewGame(m.seed)
	if err != nil {
		m.status = fmt.Sprintf("restart failed: %v", err)
		return m, nil
	}
	m.state = st
	m.ticks = 0
	m.scoreSaved = false
	m.status = ""
	m.held.release()
	m.inputFrame.Clear()
	m.gameState = core.GameState{}
	m.gameState = m.snapshot()
	return m, nil
}

// handleResize processes window resize events. The game keeps running;
// only the rasterization grid changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldRows(msg.Height))
	return m, nil
}

// handleTick advances the simulation by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.Paused || m.gameState.GameOver {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.held.apply(&m.inputFrame)
	m.state.UpdateMut(m.inputFrame.Input())
	m.ticks++
	m.gameState = m.snapshot()

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, the game over screen shows regardless
			m.store.SaveScore(m.sim.ID(), m.gameState.Score, m.gameState.Level, m.seed)
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// quicksave stores the running game in the quicksave slot.
func (m *Model) quicksave() {
	if m.store == nil {
		m.status = "no database, cannot save"
		return
	}
	cfg, err := m.state.ConfigJSON()
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	data, err := m.state.ToJSON()
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	err = m.store.SaveState(storage.SavedState{
		Name:   QuicksaveName,
		GameID: m.sim.ID(),
		Config: cfg,
		State:  data,
	})
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.status = "saved to " + QuicksaveName
}

// render rasterizes the current frame onto the screen buffer.
func (m Model) render() {
	cmds := m.state.Draw()
	fw, fh := core.FrameBounds(cmds)
	cellW, cellH := core.CellSize(fw, fh, m.screen.Width(), m.screen.Height())
	m.screen.Clear()
	m.screen.Rasterize(cmds, cellW, cellH)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed: no home directory"
		return
	}
	dir := filepath.Join(home, ".toybox", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sim.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	m.status = "screenshot " + filepath.Base(path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	hud := RenderHUD(m.sim.Title(), m.gameState, m.config.ScreenW)
	if m.status != "" {
		hud += "  " + hudDimStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + hud
}

// State returns the running game.
func (m Model) State() registry.State {
	return m.state
}

// Ticks returns how many simulation steps ran since the game started.
func (m Model) Ticks() int {
	return m.ticks
}

// Run starts the Bubble Tea program for sim. When restored is non-nil the
// session continues that game instead of starting a new one.
func Run(sim registry.Simulation, restored registry.State, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(sim, store, cfg)
	if err != nil {
		return err
	}
	if restored != nil {
		model = model.WithState(restored)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
