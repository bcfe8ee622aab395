package store

import (
	"context"
	"time"
)

// Achievement is one earned badge. The set is append-only and
// deduplicated by ID; entries are removed only by a full reset.
type Achievement struct {
	ID         string    `json:"id"`
	DateEarned time.Time `json:"dateEarned"`
}

// AchievementsRepo manages the achievements record.
type AchievementsRepo struct {
	store *Store
}

// All returns every earned achievement in the order earned.
func (r *AchievementsRepo) All(ctx context.Context) ([]Achievement, error) {
	var list []Achievement
	if _, err := r.store.getRecord(ctx, keyAchievements, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Add appends an achievement if its ID is not already present.
// Reports whether the achievement was newly earned.
func (r *AchievementsRepo) Add(ctx context.Context, id string) (bool, error) {
	list, err := r.All(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if a.ID == id {
			return false, nil
		}
	}
	list = append(list, Achievement{ID: id, DateEarned: time.Now().UTC()})
	if err := r.store.putRecord(ctx, keyAchievements, list); err != nil {
		return false, err
	}
	return true, nil
}
