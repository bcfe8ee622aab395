package store

import "context"

// ScoreRepo manages the per-game score record.
type ScoreRepo struct {
	store *Store
}

// All returns the full score map. Games never scored are absent.
func (r *ScoreRepo) All(ctx context.Context) (map[GameID]int, error) {
	m := make(map[GameID]int)
	if _, err := r.store.getRecord(ctx, keyScores, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns one game's score, zero when absent.
func (r *ScoreRepo) Get(ctx context.Context, id GameID) (int, error) {
	m, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	return m[id], nil
}

// Set overwrites one game's score. Negative values are clamped to zero.
func (r *ScoreRepo) Set(ctx context.Context, id GameID, score int) error {
	if score < 0 {
		score = 0
	}
	m, err := r.All(ctx)
	if err != nil {
		return err
	}
	m[id] = score
	return r.store.putRecord(ctx, keyScores, m)
}
