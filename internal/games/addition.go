package games

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/playmath/internal/store"
)

// additionLevels maps level to its operand range.
var additionLevels = map[int]levelConfig{
	1: {Min: 1, Max: 5},
	2: {Min: 1, Max: 10},
	3: {Min: 5, Max: 20},
}

// levelConfig is one level's numeric configuration.
type levelConfig struct {
	Min, Max  int
	MinResult int   // subtraction: lowest allowed result
	SkipSteps []int // series: allowed strides
}

// withMaxOverride applies a parent's MaxNumber override when it leaves
// a sane range. An override at or below Min is ignored.
func (c levelConfig) withMaxOverride(cfg store.GameSettings) levelConfig {
	if cfg.MaxNumber > c.Min {
		c.Max = cfg.MaxNumber
	}
	return c
}

// Addition generates questions like "3 + 4 = ?" with four options.
type Addition struct{}

func (Addition) ID() store.GameID       { return store.GameAddition }
func (Addition) MaxLevel() int          { return len(additionLevels) }
func (Addition) QuestionsPerLevel() int { return 10 }

func (g Addition) Generate(level int, rng *rand.Rand, cfg store.GameSettings) (*Question, error) {
	lc := additionLevels[clampLevel(level, g.MaxLevel())].withMaxOverride(cfg)

	num1 := intBetween(lc.Min, lc.Max, rng)
	num2 := intBetween(lc.Min, lc.Max, rng)
	correct := num1 + num2

	lo := correct - 5
	if lo < 0 {
		lo = 0
	}
	hi := correct + 5

	return &Question{
		Game:          store.GameAddition,
		Level:         level,
		Kind:          KindChoice,
		Prompt:        fmt.Sprintf("%d + %d = ?", num1, num2),
		Operands:      []int{num1, num2},
		CorrectAnswer: correct,
		Options:       buildOptions(correct, lo, hi, rng),
	}, nil
}

func (Addition) Check(q *Question, a Answer) bool {
	return checkChoice(q, a)
}
