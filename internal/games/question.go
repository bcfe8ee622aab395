package games

import (
	"math/rand/v2"

	"github.com/abhisek/playmath/internal/store"
)

// Kind describes how a question is answered.
type Kind int

const (
	// KindChoice means the learner picks one of four presented options.
	KindChoice Kind = iota

	// KindSeries means the learner fills in missing sequence values
	// plus the stride.
	KindSeries
)

// Question is a single generated question, ready for display. It is
// ephemeral: questions are never persisted.
type Question struct {
	Game  store.GameID
	Level int
	Kind  Kind

	// Prompt is the question text shown to the learner,
	// e.g. "3 + 4 = ?" or "Find the number 7".
	Prompt string

	// Choice questions.
	Operands      []int
	CorrectAnswer int
	// Options holds exactly 4 pairwise-distinct values in randomized
	// order; exactly one equals CorrectAnswer.
	Options []int

	// Series questions.
	Sequence []int // 6 terms with constant stride SkipStep
	SkipStep int
	Missing  []int // 1 or 2 distinct indices into Sequence
}

// Answer is a submitted answer. Choice questions use Value; series
// questions use SkipStep and Values (keyed by sequence index).
type Answer struct {
	Value    int
	SkipStep int
	Values   map[int]int
}

// shuffle randomizes option order in place (Fisher-Yates).
func shuffle(opts []int, rng *rand.Rand) {
	for i := len(opts) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
}

// intBetween returns a uniform random value in [lo, hi].
func intBetween(lo, hi int, rng *rand.Rand) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
