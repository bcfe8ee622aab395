package parent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/playmath/internal/store"
)

// SnapshotGame is one game's exported score/level pair.
type SnapshotGame struct {
	Score int `json:"score"`
	Level int `json:"level"`
}

// Snapshot is the exported data file: every game's score and level,
// plus achievements, stamped with an ID and timestamp.
type Snapshot struct {
	ID           string                        `json:"id"`
	Timestamp    time.Time                     `json:"timestamp"`
	Games        map[store.GameID]SnapshotGame `json:"games"`
	Achievements []store.Achievement           `json:"achievements,omitempty"`
}

// ExportSnapshot captures the current per-game score/level pairs and
// achievements.
func (s *Service) ExportSnapshot(ctx context.Context) (*Snapshot, error) {
	scores, err := s.store.Scores().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	levels, err := s.store.Levels().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	achievements, err := s.store.Achievements().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}

	snap := &Snapshot{
		ID:           uuid.New().String(),
		Timestamp:    time.Now().UTC(),
		Games:        make(map[store.GameID]SnapshotGame, len(store.AllGames())),
		Achievements: achievements,
	}
	for _, id := range store.AllGames() {
		lvl := levels[id]
		if lvl < 1 {
			lvl = 1
		}
		snap.Games[id] = SnapshotGame{Score: scores[id], Level: lvl}
	}
	return snap, nil
}

// WriteSnapshot exports a snapshot to the given file path as indented
// JSON.
func (s *Service) WriteSnapshot(ctx context.Context, path string) error {
	snap, err := s.ExportSnapshot(ctx)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ImportSnapshot reads a snapshot file, validates it against the
// snapshot schema, and restores every contained score and level.
// Settings and progress records are left untouched.
func (s *Service) ImportSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if err := validateSnapshot(raw); err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	for id, g := range snap.Games {
		if !id.Valid() {
			return nil, fmt.Errorf("snapshot names unknown game %q", id)
		}
		if err := s.store.Scores().Set(ctx, id, g.Score); err != nil {
			return nil, fmt.Errorf("restore score for %s: %w", id, err)
		}
		if err := s.store.Levels().Set(ctx, id, g.Level); err != nil {
			return nil, fmt.Errorf("restore level for %s: %w", id, err)
		}
	}
	return &snap, nil
}
