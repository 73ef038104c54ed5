package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// RunRecord is a recorded action sequence that can be replayed
// deterministically from its seed.
type RunRecord struct {
	ID        int64
	GameID    string
	Seed      uint32
	Actions   []int
	Ticks     int
	Score     int
	TraceHash uint64
	CreatedAt time.Time
}

// SaveRun stores a recorded run and returns its ID.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	actions, err := json.Marshal(run.Actions)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode actions: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, seed, actions, ticks, score, trace_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Seed, string(actions), run.Ticks, run.Score,
		strconv.FormatUint(run.TraceHash, 16),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RunByID loads one recorded run. It returns ErrNotFound for unknown IDs.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, seed, actions, ticks, score, trace_hash, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentRuns lists the newest runs of a game. A non-positive limit means 20.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, actions, ticks, score, trace_hash, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		run       RunRecord
		actions   string
		traceHash string
		createdAt any
	)
	err := row.Scan(&run.ID, &run.GameID, &run.Seed, &actions, &run.Ticks, &run.Score, &traceHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(actions), &run.Actions); err != nil {
		return nil, fmt.Errorf("storage: run %d has corrupt actions: %w", run.ID, err)
	}
	run.TraceHash, err = strconv.ParseUint(traceHash, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("storage: run %d has corrupt trace hash: %w", run.ID, err)
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
