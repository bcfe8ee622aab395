package store

import (
	"context"
	"time"
)

// GameProgress is one game's stored progress entry. Percent is the
// accuracy of the most recently finished round, not a cumulative
// figure: each round overwrites the previous value.
type GameProgress struct {
	Percent    int        `json:"percent"`
	LastPlayed *time.Time `json:"lastPlayed,omitempty"`
}

// ProgressRepo manages the per-game progress record.
type ProgressRepo struct {
	store *Store
}

// All returns the full progress map. Games never played are absent.
func (r *ProgressRepo) All(ctx context.Context) (map[GameID]GameProgress, error) {
	m := make(map[GameID]GameProgress)
	if _, err := r.store.getRecord(ctx, keyProgress, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns one game's progress, zero-valued when absent.
func (r *ProgressRepo) Get(ctx context.Context, id GameID) (GameProgress, error) {
	m, err := r.All(ctx)
	if err != nil {
		return GameProgress{}, err
	}
	return m[id], nil
}

// Set overwrites one game's completion percent and stamps the
// last-played time with the current moment.
func (r *ProgressRepo) Set(ctx context.Context, id GameID, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m, err := r.All(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	m[id] = GameProgress{Percent: percent, LastPlayed: &now}
	return r.store.putRecord(ctx, keyProgress, m)
}
