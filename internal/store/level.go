package store

import "context"

// LevelRepo manages the per-game level record. A returning player
// resumes at the saved level; levels only move forward except through
// a full reset.
type LevelRepo struct {
	store *Store
}

// All returns the full level map. Games never played are absent.
func (r *LevelRepo) All(ctx context.Context) (map[GameID]int, error) {
	m := make(map[GameID]int)
	if _, err := r.store.getRecord(ctx, keyLevels, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns one game's saved level, 1 when absent.
func (r *LevelRepo) Get(ctx context.Context, id GameID) (int, error) {
	m, err := r.All(ctx)
	if err != nil {
		return 1, err
	}
	if lvl, ok := m[id]; ok && lvl >= 1 {
		return lvl, nil
	}
	return 1, nil
}

// Set overwrites one game's level. Values below 1 are stored as 1.
func (r *LevelRepo) Set(ctx context.Context, id GameID, level int) error {
	if level < 1 {
		level = 1
	}
	m, err := r.All(ctx)
	if err != nil {
		return err
	}
	m[id] = level
	return r.store.putRecord(ctx, keyLevels, m)
}
