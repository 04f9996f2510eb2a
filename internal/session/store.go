// Package session provides the local session store: the bearer token and
// cached profile a browser would keep in localStorage, persisted in SQLite.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Keys for the values the store holds.
const (
	KeyAccessToken = "access_token"
	KeyProfileData = "profile_data"
)

// ErrAuthMissing indicates no token or profile is available; operations that
// need them fail fast without a network call.
var ErrAuthMissing = errors.New("not logged in")

// Store is a SQLite-backed key-value store for session state.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default session database path:
// ~/.config/vmsync/session.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vmsync", "session.db"), nil
}

// Open opens (or creates) the session store at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	if err := initialize(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	return &Store{db: db}, nil
}

// initialize sets pragmas and creates the session table.
func initialize(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating session table: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for a key, or "" if the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session key %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO session (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing session key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting session key %s: %w", key, err)
	}
	return nil
}

// Clear removes all session state. Used by logout.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when not logged in.
func (s *Store) Token() (string, error) {
	return s.Get(KeyAccessToken)
}

// Profile returns the cached profile snapshot.
// Returns ErrAuthMissing when no profile is cached.
func (s *Store) Profile() (*Profile, error) {
	raw, err := s.Get(KeyProfileData)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrAuthMissing
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parsing cached profile: %w", err)
	}
	return &p, nil
}

// SaveLogin stores the token and profile snapshot in one step.
func (s *Store) SaveLogin(token string, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := s.Set(KeyAccessToken, token); err != nil {
		return err
	}
	return s.Set(KeyProfileData, string(data))
}
