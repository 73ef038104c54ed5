package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SavedState is a named snapshot of a game's configuration and state, both
// as produced by the simulation's JSON serializers.
type SavedState struct {
	Name      string
	GameID    string
	Config    []byte
	State     []byte
	UpdatedAt time.Time
}

// SaveState stores a snapshot under name, replacing any previous one.
func (s *Store) SaveState(save SavedState) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (name, game_id, config, state, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   game_id = excluded.game_id,
		   config = excluded.config,
		   state = excluded.state,
		   updated_at = excluded.updated_at`,
		save.Name, save.GameID, string(save.Config), string(save.State),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save state %q: %w", save.Name, err)
	}
	return nil
}

// LoadState fetches a snapshot. It returns ErrNotFound for unknown names.
func (s *Store) LoadState(name string) (*SavedState, error) {
	var (
		save          SavedState
		config, state string
		updatedAt     any
	)
	err := s.db.QueryRow(
		`SELECT name, game_id, config, state, updated_at FROM saves WHERE name = ?`,
		name,
	).Scan(&save.Name, &save.GameID, &config, &state, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("save %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load state %q: %w", name, err)
	}

	save.Config = []byte(config)
	save.State = []byte(state)
	save.UpdatedAt = parseTime(updatedAt)
	return &save, nil
}

// ListSaves returns every snapshot name and game, newest first, without
// the payloads.
func (s *Store) ListSaves() ([]SavedState, error) {
	rows, err := s.db.Query(`SELECT name, game_id, updated_at FROM saves ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var saves []SavedState
	for rows.Next() {
		var save SavedState
		var updatedAt any
		if err := rows.Scan(&save.Name, &save.GameID, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		save.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, save)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a snapshot. Deleting a missing name is not an error.
func (s *Store) DeleteSave(name string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete save %q: %w", name, err)
	}
	return nil
}
