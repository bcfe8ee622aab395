// Package parent implements the parent-facing operations: reading the
// dashboard overview, editing settings, resetting progress, and
// exporting or importing a data snapshot.
package parent

import (
	"context"
	"fmt"

	"github.com/abhisek/playmath/internal/progress"
	"github.com/abhisek/playmath/internal/store"
)

// GameStats is one game's score/level pair shown on the dashboard.
type GameStats struct {
	Score int
	Level int
}

// Overview is everything the dashboard renders.
type Overview struct {
	Settings     store.Settings
	Stats        map[store.GameID]GameStats
	Progress     map[store.GameID]progress.Summary
	Achievements []store.Achievement
}

// Service exposes the parent dashboard operations over the store.
type Service struct {
	store *store.Store
	agg   *progress.Aggregator
}

// NewService creates a parent Service.
func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		agg:   progress.New(st.Progress()),
	}
}

// Overview reads settings, per-game stats, aggregated progress, and
// achievements in one pass.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	settings, err := s.store.Settings().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	scores, err := s.store.Scores().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	levels, err := s.store.Levels().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}

	stats := make(map[store.GameID]GameStats, len(store.AllGames()))
	for _, id := range store.AllGames() {
		lvl := levels[id]
		if lvl < 1 {
			lvl = 1
		}
		stats[id] = GameStats{Score: scores[id], Level: lvl}
	}

	prog, err := s.agg.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate progress: %w", err)
	}

	achievements, err := s.store.Achievements().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}

	return &Overview{
		Settings:     settings,
		Stats:        stats,
		Progress:     prog,
		Achievements: achievements,
	}, nil
}

// SaveSettings replaces the settings record wholesale.
func (s *Service) SaveSettings(ctx context.Context, settings store.Settings) error {
	if settings.MaxQuestionsPerRound < 1 {
		return fmt.Errorf("max questions per round must be at least 1, got %d",
			settings.MaxQuestionsPerRound)
	}
	return s.store.Settings().Save(ctx, settings)
}

// UpdateGameSettings shallow-merges one game's overrides.
func (s *Service) UpdateGameSettings(ctx context.Context, id store.GameID, gs store.GameSettings) error {
	if !id.Valid() {
		return fmt.Errorf("unknown game %q", id)
	}
	return s.store.Settings().UpdateGame(ctx, id, gs)
}

// ResetAll wipes every stored record: score 0 and level 1 for every
// game, progress and achievements cleared. Idempotent.
func (s *Service) ResetAll(ctx context.Context) error {
	return s.store.ResetAll(ctx)
}
