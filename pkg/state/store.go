// Package state persists dashboard state across runs in a small SQLite
// database. Values are stored as JSON per key, split into a user scope
// and a ui scope matching the two halves of engine.DashboardState.
// Values that do not marshal to JSON are skipped rather than failing
// the whole save.
package state

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/frescoui/fresco/pkg/engine"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

const (
	scopeUser = "user"
	scopeUI   = "ui"
)

// Store manages the state database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:"
// gives an ephemeral store for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	// One writer, single process; a small pool is plenty.
	db.SetMaxOpenConns(2)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := checkVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func checkVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_info LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		_, err = db.Exec("INSERT INTO schema_info (version) VALUES (?)", schemaVersion)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("state database schema version %d is newer than supported %d", version, schemaVersion)
	}
	return nil
}

// Save replaces the stored state with the given one.
func (s *Store) Save(st *engine.DashboardState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM kv_state"); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	if err := saveScope(tx, scopeUser, st.User); err != nil {
		return err
	}
	if err := saveScope(tx, scopeUI, st.UI); err != nil {
		return err
	}
	return tx.Commit()
}

func saveScope(tx *sql.Tx, scope string, values map[string]any) error {
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			continue // unserializable values (live widget state etc.) are transient
		}
		if _, err := tx.Exec(
			"INSERT INTO kv_state (scope, key, value) VALUES (?, ?, ?)",
			scope, key, string(data),
		); err != nil {
			return fmt.Errorf("failed to save %s/%s: %w", scope, key, err)
		}
	}
	return nil
}

// Restore merges stored values into st. Keys already present in st are
// overwritten; JSON that no longer parses is skipped.
func (s *Store) Restore(st *engine.DashboardState) error {
	rows, err := s.db.Query("SELECT scope, key, value FROM kv_state")
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scope, key, raw string
		if err := rows.Scan(&scope, &key, &raw); err != nil {
			return fmt.Errorf("failed to scan state row: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			continue
		}
		switch scope {
		case scopeUser:
			st.User[key] = value
		case scopeUI:
			st.UI[key] = value
		}
	}
	return rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
