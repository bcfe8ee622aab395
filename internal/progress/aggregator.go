// Package progress derives the per-game summaries shown by the menu
// and the parent dashboard. It is a read-only view over the
// persistence store: the single most recent round's accuracy and the
// last-played time, with zero-value defaults for games never played.
package progress

import (
	"context"
	"time"

	"github.com/abhisek/playmath/internal/store"
)

// Summary is one game's aggregated progress.
type Summary struct {
	Percent    int
	LastPlayed *time.Time
}

// Aggregator reads progress records from the store.
type Aggregator struct {
	progress *store.ProgressRepo
}

// New creates an Aggregator over the given repo.
func New(progress *store.ProgressRepo) *Aggregator {
	return &Aggregator{progress: progress}
}

// Summary returns one game's completion percent and last-played time.
// Games never played report 0 and nil.
func (a *Aggregator) Summary(ctx context.Context, id store.GameID) (Summary, error) {
	gp, err := a.progress.Get(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Percent: gp.Percent, LastPlayed: gp.LastPlayed}, nil
}

// All returns a summary for every game, including zero entries for
// games never played.
func (a *Aggregator) All(ctx context.Context) (map[store.GameID]Summary, error) {
	stored, err := a.progress.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[store.GameID]Summary, len(store.AllGames()))
	for _, id := range store.AllGames() {
		gp := stored[id]
		out[id] = Summary{Percent: gp.Percent, LastPlayed: gp.LastPlayed}
	}
	return out, nil
}
