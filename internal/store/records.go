package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Record keys, one namespace per record kind.
const (
	keySettings     = "settings"
	keyProgress     = "progress"
	keyScores       = "scores"
	keyLevels       = "levels"
	keyAchievements = "achievements"
)

// getRecord loads the JSON value stored under key into out. A missing
// row or a row that fails to parse leaves out untouched and returns
// false: callers substitute their documented default instead of
// surfacing an error to the user.
func (s *Store) getRecord(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read record %q: %w", key, err)
	}
	// json.Unmarshal fills fields as it parses, so a row that fails
	// mid-document would leave out half-written. Snapshot the
	// caller's default and restore it on failure.
	dst := reflect.ValueOf(out).Elem()
	saved := reflect.New(dst.Type())
	saved.Elem().Set(dst)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Corrupted value: treat as absent.
		dst.Set(saved.Elem())
		return false, nil
	}
	return true, nil
}

// putRecord serializes value as JSON and overwrites the row under key
// wholesale. Partial updates are the caller's concern (read, merge,
// put).
func (s *Store) putRecord(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}
