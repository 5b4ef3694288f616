package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// migrations[i] moves the schema from user_version i to i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS counters (
		id                   TEXT PRIMARY KEY,
		position             INTEGER NOT NULL DEFAULT 0,
		name                 TEXT NOT NULL DEFAULT '',
		arabic               TEXT NOT NULL DEFAULT '',
		target               INTEGER NOT NULL DEFAULT 33,
		current              INTEGER NOT NULL DEFAULT 0,
		all_time_count       INTEGER NOT NULL DEFAULT 0,
		streak               INTEGER NOT NULL DEFAULT 0,
		total_completed_days INTEGER NOT NULL DEFAULT 0,
		last_completed_date  TEXT NOT NULL DEFAULT '',
		updated_at           TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS daily_history (
		date  TEXT PRIMARY KEY,
		total INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('last_reset_date', ''),
		('first_use_date',  ''),
		('ledger_version',  '1');
	`,
}

// Store persists the ledger in SQLite.
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath, creating it and its directory if
// needed, and brings the schema up to date.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("to v%d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath returns ~/.config/deen/deen.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "deen", "deen.db"), nil
}
