package games

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/playmath/internal/store"
)

var numberRecLevels = map[int]levelConfig{
	1: {Min: 1, Max: 5},
	2: {Min: 1, Max: 10},
	3: {Min: 1, Max: 20},
}

// NumberRecognition asks the learner to spot a target number among
// four options. Distractors are drawn uniformly from the whole level
// range rather than a window around the answer.
type NumberRecognition struct{}

func (NumberRecognition) ID() store.GameID       { return store.GameNumberRecognition }
func (NumberRecognition) MaxLevel() int          { return len(numberRecLevels) }
func (NumberRecognition) QuestionsPerLevel() int { return 10 }

func (g NumberRecognition) Generate(level int, rng *rand.Rand, cfg store.GameSettings) (*Question, error) {
	lc := numberRecLevels[clampLevel(level, g.MaxLevel())].withMaxOverride(cfg)

	target := intBetween(lc.Min, lc.Max, rng)

	return &Question{
		Game:          store.GameNumberRecognition,
		Level:         level,
		Kind:          KindChoice,
		Prompt:        fmt.Sprintf("Find the number %d", target),
		Operands:      []int{target},
		CorrectAnswer: target,
		Options:       buildOptions(target, lc.Min, lc.Max, rng),
	}, nil
}

func (NumberRecognition) Check(q *Question, a Answer) bool {
	return checkChoice(q, a)
}
