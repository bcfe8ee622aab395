package games

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/playmath/internal/store"
)

var subtractionLevels = map[int]levelConfig{
	1: {Min: 1, Max: 5, MinResult: 0},
	2: {Min: 1, Max: 10, MinResult: 0},
	3: {Min: 5, Max: 20, MinResult: 0},
}

// Subtraction generates questions like "7 - 2 = ?" with four options.
// Results never go below the level's MinResult unless the parent has
// allowed negative results.
type Subtraction struct{}

func (Subtraction) ID() store.GameID       { return store.GameSubtraction }
func (Subtraction) MaxLevel() int          { return len(subtractionLevels) }
func (Subtraction) QuestionsPerLevel() int { return 10 }

func (g Subtraction) Generate(level int, rng *rand.Rand, cfg store.GameSettings) (*Question, error) {
	lc := subtractionLevels[clampLevel(level, g.MaxLevel())].withMaxOverride(cfg)

	minResult := lc.MinResult
	if cfg.AllowNegative {
		minResult = -lc.Max
	}

	num1 := intBetween(lc.Min, lc.Max, rng)
	// num2 is bounded so num1 - num2 >= minResult by construction.
	num2 := intBetween(0, num1-minResult, rng)
	correct := num1 - num2

	lo := correct - 5
	if lo < minResult {
		lo = minResult
	}
	hi := correct + 5
	if hi > lc.Max {
		hi = lc.Max
	}

	return &Question{
		Game:          store.GameSubtraction,
		Level:         level,
		Kind:          KindChoice,
		Prompt:        fmt.Sprintf("%d - %d = ?", num1, num2),
		Operands:      []int{num1, num2},
		CorrectAnswer: correct,
		Options:       buildOptions(correct, lo, hi, rng),
	}, nil
}

func (Subtraction) Check(q *Question, a Answer) bool {
	return checkChoice(q, a)
}
