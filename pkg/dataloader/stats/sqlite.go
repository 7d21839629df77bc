package stats

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists statistics snapshots to SQLite.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (or creates) a snapshot database.
// The path should be a file path or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS statistics_snapshots (
			id TEXT PRIMARY KEY,
			registry TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_statistics_snapshots_registry
		ON statistics_snapshots(registry, sequence)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(snap Snapshot) (Snapshot, error) {
	if snap.ID == "" {
		return Snapshot{}, ErrMissingID
	}

	data, err := json.Marshal(snap.Statistics)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode statistics: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Snapshot{}, ErrStoreClosed
	}

	err = s.db.QueryRow(`
		INSERT INTO statistics_snapshots (id, registry, sequence, timestamp, data)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(sequence) FROM statistics_snapshots WHERE registry = ?), 0) + 1,
			?, ?
		)
		ON CONFLICT(id) DO UPDATE SET
			registry = excluded.registry,
			sequence = excluded.sequence,
			timestamp = excluded.timestamp,
			data = excluded.data
		RETURNING sequence
	`, snap.ID, snap.Registry, snap.Registry, snap.Timestamp.UTC().Format(time.RFC3339Nano), data).Scan(&snap.Sequence)
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(id string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Snapshot{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, registry, sequence, timestamp, data
		FROM statistics_snapshots
		WHERE id = ?
	`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// List implements Store.
func (s *SQLiteStore) List(registry string) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, registry, sequence, timestamp, data
		FROM statistics_snapshots
		WHERE registry = ?
		ORDER BY sequence
	`, registry)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// Latest implements Store.
func (s *SQLiteStore) Latest(registry string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Snapshot{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT id, registry, sequence, timestamp, data
		FROM statistics_snapshots
		WHERE registry = ?
		ORDER BY sequence DESC
		LIMIT 1
	`, registry)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, nil
}

// DeleteRegistry implements Store.
func (s *SQLiteStore) DeleteRegistry(registry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM statistics_snapshots WHERE registry = ?`, registry); err != nil {
		return fmt.Errorf("delete registry snapshots: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var (
		snap      Snapshot
		timestamp string
		data      []byte
	)
	if err := row.Scan(&snap.ID, &snap.Registry, &snap.Sequence, &timestamp, &data); err != nil {
		return Snapshot{}, err
	}
	snap.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
	if err := json.Unmarshal(data, &snap.Statistics); err != nil {
		return Snapshot{}, fmt.Errorf("decode statistics: %w", err)
	}
	return snap, nil
}
