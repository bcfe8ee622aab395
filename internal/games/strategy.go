package games

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/playmath/internal/store"
)

// Strategy is the per-game question policy. One implementation exists
// per mini-game; sessions are generic over this interface.
type Strategy interface {
	// ID returns the game this strategy serves.
	ID() store.GameID

	// MaxLevel is the highest configured level.
	MaxLevel() int

	// QuestionsPerLevel is the round size for this game.
	QuestionsPerLevel() int

	// Generate produces a question for the given level. cfg carries
	// the parent's per-game overrides.
	Generate(level int, rng *rand.Rand, cfg store.GameSettings) (*Question, error)

	// Check reports whether a answers q correctly.
	Check(q *Question, a Answer) bool
}

// Registry returns the explicit game-id-to-strategy mapping.
func Registry() map[store.GameID]Strategy {
	return map[store.GameID]Strategy{
		store.GameAddition:          Addition{},
		store.GameSubtraction:       Subtraction{},
		store.GameNumberRecognition: NumberRecognition{},
		store.GameSeries:            Series{},
	}
}

// Get returns the strategy for id.
func Get(id store.GameID) (Strategy, error) {
	s, ok := Registry()[id]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", id)
	}
	return s, nil
}

// clampLevel confines level to [1, max].
func clampLevel(level, max int) int {
	if level < 1 {
		return 1
	}
	if level > max {
		return max
	}
	return level
}

// checkChoice is the shared equality check for choice questions.
func checkChoice(q *Question, a Answer) bool {
	return a.Value == q.CorrectAnswer
}
