package store

import "context"

// Difficulty is the global difficulty tier selected by a parent.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GameSettings holds the per-game overrides a parent can tune.
type GameSettings struct {
	// MaxNumber caps the operand range. Zero means "use the level table".
	MaxNumber int `json:"maxNumber"`

	// AllowNegative permits results below zero. Subtraction only.
	AllowNegative bool `json:"allowNegative,omitempty"`
}

// Settings is the singleton settings record. It is created with
// defaults on first read and overwritten wholesale on save.
type Settings struct {
	SoundEnabled         bool                    `json:"soundEnabled"`
	Difficulty           Difficulty              `json:"difficulty"`
	MaxQuestionsPerRound int                     `json:"maxQuestionsPerRound"`
	Games                map[GameID]GameSettings `json:"games"`
}

// DefaultSettings returns the settings applied on first use.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:         true,
		Difficulty:           DifficultyEasy,
		MaxQuestionsPerRound: 10,
		Games: map[GameID]GameSettings{
			GameAddition:          {MaxNumber: 10},
			GameSubtraction:       {MaxNumber: 10},
			GameNumberRecognition: {MaxNumber: 20},
		},
	}
}

// SettingsRepo manages the singleton settings record.
type SettingsRepo struct {
	store *Store
}

// Get returns the stored settings, or the defaults when no record
// exists or the stored value is unreadable.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	s := DefaultSettings()
	if _, err := r.store.getRecord(ctx, keySettings, &s); err != nil {
		return DefaultSettings(), err
	}
	if s.Games == nil {
		s.Games = DefaultSettings().Games
	}
	if s.MaxQuestionsPerRound < 1 {
		s.MaxQuestionsPerRound = 1
	}
	return s, nil
}

// Save overwrites the settings record wholesale.
func (r *SettingsRepo) Save(ctx context.Context, s Settings) error {
	return r.store.putRecord(ctx, keySettings, s)
}

// UpdateGame shallow-merges one game's overrides into the stored
// settings and saves the result.
func (r *SettingsRepo) UpdateGame(ctx context.Context, id GameID, gs GameSettings) error {
	s, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if s.Games == nil {
		s.Games = make(map[GameID]GameSettings)
	}
	s.Games[id] = gs
	return r.Save(ctx, s)
}
