package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database and provides access to the typed
// record repositories. Every record kind lives in a single key/value
// table; each repository owns one namespaced key.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Settings returns the SettingsRepo backed by this store.
func (s *Store) Settings() *SettingsRepo {
	return &SettingsRepo{store: s}
}

// Progress returns the ProgressRepo backed by this store.
func (s *Store) Progress() *ProgressRepo {
	return &ProgressRepo{store: s}
}

// Scores returns the ScoreRepo backed by this store.
func (s *Store) Scores() *ScoreRepo {
	return &ScoreRepo{store: s}
}

// Levels returns the LevelRepo backed by this store.
func (s *Store) Levels() *LevelRepo {
	return &LevelRepo{store: s}
}

// Achievements returns the AchievementsRepo backed by this store.
func (s *Store) Achievements() *AchievementsRepo {
	return &AchievementsRepo{store: s}
}

// ResetAll deletes every stored record. Subsequent reads yield the
// documented defaults: score 0 and level 1 for every game, empty
// progress, no achievements, default settings. Resetting an
// already-empty store is a no-op, so the operation is idempotent.
func (s *Store) ResetAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("reset records: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PLAYMATH_DB environment variable
// 2. $XDG_DATA_HOME/playmath/playmath.db
// 3. ~/.local/share/playmath/playmath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PLAYMATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "playmath", "playmath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
