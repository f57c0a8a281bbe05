package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	appDir         = "pomodoro-cli"
	currentVersion = 2
)

// ErrNoDirectory is returned when no OS directory is available for the
// application's files.
var ErrNoDirectory = errors.New("no suitable directory for application data")

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite history database at dbPath and runs
// migrations.
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

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
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
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS sessions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      TEXT NOT NULL UNIQUE,
		message     TEXT NOT NULL DEFAULT '',
		started_at  TEXT NOT NULL,
		ended_at    TEXT NOT NULL,
		planned     INTEGER NOT NULL DEFAULT 0,
		elapsed     INTEGER NOT NULL DEFAULT 0,
		completed   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('default_duration', '1500'),
		('silent',           'false'),
		('notify',           'false'),
		('time_format',      'segmented');
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) migrateV2() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS profiles (
		name        TEXT PRIMARY KEY,
		sequence    TEXT NOT NULL,
		messages    TEXT NOT NULL DEFAULT '[]',
		alarm_file  TEXT NOT NULL DEFAULT '',
		icon_file   TEXT NOT NULL DEFAULT '',
		silent      INTEGER NOT NULL DEFAULT 0,
		notify      INTEGER NOT NULL DEFAULT 0,
		repeat      INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/pomodoro-cli/history.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDirectory, err)
	}
	return filepath.Join(cfg, appDir, "history.db"), nil
}

// DefaultRecordPath returns the timer record file inside the user cache
// directory, or the working directory when no cache directory exists.
func DefaultRecordPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return "", fmt.Errorf("%w: %v", ErrNoDirectory, errors.Join(err, werr))
		}
		return filepath.Join(wd, "pomodoro-cli-info.json"), nil
	}
	return filepath.Join(dir, appDir, "pomodoro-cli-info.json"), nil
}

// ConfigDir returns ~/.config/pomodoro-cli, where optional alarm and icon
// files live.
func ConfigDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDirectory, err)
	}
	return filepath.Join(cfg, appDir), nil
}
