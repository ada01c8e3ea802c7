package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"sprintpulse/internal/sprint"
)

// Store caches fetched sprint snapshots in a local SQLite database so that
// repeated metric requests for the same sprint do not hit Azure DevOps again.
type Store struct {
	db *sql.DB
}

// Snapshot is one cached fetch result for a sprint scope.
type Snapshot struct {
	Sprint    string
	Pod       string
	FetchedAt time.Time
	Items     []sprint.WorkItem
}

// New opens (or creates) the SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		sprint      TEXT NOT NULL,
		pod         TEXT NOT NULL DEFAULT '',
		fetched_at  DATETIME NOT NULL,
		items       TEXT NOT NULL,
		PRIMARY KEY (sprint, pod)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot upserts the cached items for a sprint scope.
func (s *Store) SaveSnapshot(sprintName, pod string, items []sprint.WorkItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		`INSERT INTO snapshots (sprint, pod, fetched_at, items) VALUES (?, ?, ?, ?)
		 ON CONFLICT(sprint, pod) DO UPDATE SET fetched_at = excluded.fetched_at, items = excluded.items`,
		sprintName, pod, now, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached snapshot for a sprint scope, or nil if none
// has been saved.
func (s *Store) LoadSnapshot(sprintName, pod string) (*Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT fetched_at, items FROM snapshots WHERE sprint = ? AND pod = ?`,
		sprintName, pod,
	)

	var snap Snapshot
	var payload string
	err := row.Scan(&snap.FetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &snap.Items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Sprint = sprintName
	snap.Pod = pod
	return &snap, nil
}

// InvalidateSnapshot drops the cached snapshot for a sprint scope. Invalidation
// is manual; snapshots never expire on their own.
func (s *Store) InvalidateSnapshot(sprintName, pod string) error {
	_, err := s.db.Exec(
		`DELETE FROM snapshots WHERE sprint = ? AND pod = ?`,
		sprintName, pod,
	)
	if err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the cached sprint scopes without their items, newest
// fetch first.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT sprint, pod, fetched_at FROM snapshots ORDER BY fetched_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.Sprint, &snap.Pod, &snap.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
