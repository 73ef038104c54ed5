package amidar

import (
	"github.com/vovakirdan/tui-toybox/internal/core"
)

// Mob is any moving actor: the player or an enemy.
type Mob struct {
	AI       MovementAI
	Position WorldPoint
	// Step is the tile the mob is currently moving toward.
	Step    *TilePoint
	Caught  bool
	Speed   int32
	History *History
}

// NewMob creates a mob at position with an empty history of the given capacity.
func NewMob(ai MovementAI, position WorldPoint, speed int32, historyCap int) *Mob {
	return &Mob{
		AI:       ai,
		Position: position,
		Speed:    speed,
		History:  NewHistory(historyCap),
	}
}

// NewPlayer creates the player mob.
func NewPlayer(position WorldPoint, speed int32, historyCap int) *Mob {
	return NewMob(&PlayerAI{}, position, speed, historyCap)
}

// IsPlayer reports whether the mob is driven by input.
func (m *Mob) IsPlayer() bool {
	_, ok := m.AI.(*PlayerAI)
	return ok
}

// Tile returns the tile the mob currently occupies.
func (m *Mob) Tile() TilePoint {
	return m.Position.ToTile()
}

// Clone returns a deep copy of the mob.
func (m *Mob) Clone() *Mob {
	c := *m
	c.AI = m.AI.clone()
	c.History = m.History.Clone()
	if m.Step != nil {
		step := *m.Step
		c.Step = &step
	}
	return &c
}

// Reset returns the mob to its start tile with fresh behavior memory.
func (m *Mob) Reset(env *moveEnv, playerStart TilePoint) {
	m.Step = nil
	m.Caught = false
	m.AI.Reset()
	m.Position = m.AI.startTile(env, playerStart).ToWorld()
	m.History.Clear()
}

// Update runs one tick: advance toward the current target, pick a new one if
// idle, then paint (player) or trim history (enemies).
func (m *Mob) Update(in core.Input, env *moveEnv, historyLimit int) *BoardUpdate {
	board := env.board
	if m.History.Empty() {
		if id, ok := board.JunctionID(m.Tile()); ok {
			m.History.PushFront(id)
		}
	}

	if m.Step != nil {
		target := *m.Step
		world := target.ToWorld()
		dx := world.X - m.Position.X
		dy := world.Y - m.Position.Y

		switch {
		case dx == 0 && dy == 0:
			m.arrive(board, target)
		case core.Abs(dx) < m.Speed && core.Abs(dy) < m.Speed:
			m.Position.X += dx
			m.Position.Y += dy
			m.arrive(board, target)
		default:
			m.Position.X += m.Speed * core.Signum(dx)
			m.Position.Y += m.Speed * core.Signum(dy)
		}
	}

	// A mob that arrived this tick chooses its next tile immediately.
	if m.Step == nil {
		if next, ok := m.AI.chooseNextTile(m.Tile(), in, env); ok {
			m.Step = &next
		}
	}

	if m.IsPlayer() {
		update := board.CheckPaint(m.History)
		if !update.Happened() {
			return nil
		}
		return &update
	}

	for m.History.Len() > historyLimit {
		m.History.PopBack()
	}
	return nil
}

func (m *Mob) arrive(board *Board, target TilePoint) {
	if id, ok := board.JunctionID(target); ok {
		m.History.PushFront(id)
	}
	m.Step = nil
}
