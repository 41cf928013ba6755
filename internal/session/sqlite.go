package session

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// migration pairs a schema version with the SQL that brings the database
// up to that version.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS session_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

// kvStore is a small durable key-value table backed by SQLite. It holds
// the allow-listed session fields between runs.
type kvStore struct {
	db *sqlx.DB
}

// openKV opens (or creates) the session database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func openKV(dbPath string) (*kvStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &kvStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *kvStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// get returns the value stored under key, or ("", false) when absent.
func (s *kvStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM session_kv WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading session key %q: %w", key, err)
	}
	return value, true, nil
}

// set stores value under key, replacing any previous value.
func (s *kvStore) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO session_kv (key, value) VALUES (?, ?)",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing session key %q: %w", key, err)
	}
	return nil
}

// delete removes key from the table. Deleting an absent key is a no-op.
func (s *kvStore) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM session_kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting session key %q: %w", key, err)
	}
	return nil
}

// close closes the underlying database connection.
func (s *kvStore) close() error {
	return s.db.Close()
}
