package games

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/abhisek/playmath/internal/store"
)

// seriesTermCount is the fixed length of a series question.
const seriesTermCount = 6

var seriesLevels = map[int]levelConfig{
	1:  {Min: 0, Max: 10, SkipSteps: []int{1, 2}},
	2:  {Min: 0, Max: 20, SkipSteps: []int{1, 2}},
	3:  {Min: 0, Max: 20, SkipSteps: []int{1, 2, 5}},
	4:  {Min: 0, Max: 50, SkipSteps: []int{1, 2, 5, 10}},
	5:  {Min: 0, Max: 100, SkipSteps: []int{1, 2, 5, 10}},
	6:  {Min: 0, Max: 100, SkipSteps: []int{1, 2, 5, 10}},
	7:  {Min: 0, Max: 100, SkipSteps: []int{1, 2, 5, 10}},
	8:  {Min: 0, Max: 100, SkipSteps: []int{1, 2, 3, 4, 5, 10}},
	9:  {Min: 0, Max: 100, SkipSteps: []int{1, 2, 3, 4, 5, 10}},
	10: {Min: 0, Max: 100, SkipSteps: []int{1, 2, 3, 4, 5, 10}},
}

// Series generates six-term constant-stride sequences with one or two
// terms blanked out. The learner supplies the stride and every blank.
type Series struct{}

func (Series) ID() store.GameID       { return store.GameSeries }
func (Series) MaxLevel() int          { return len(seriesLevels) }
func (Series) QuestionsPerLevel() int { return 5 }

func (g Series) Generate(level int, rng *rand.Rand, cfg store.GameSettings) (*Question, error) {
	base := seriesLevels[clampLevel(level, g.MaxLevel())]
	lc := base.withMaxOverride(cfg)

	// A small override can leave the wider strides no room for six
	// terms. Keep only strides that still fit the bound; when none
	// do, the override is unusable and the level's own bound applies.
	steps := fittingSteps(lc.SkipSteps, lc.Max)
	if len(steps) == 0 {
		lc = base
		steps = fittingSteps(lc.SkipSteps, lc.Max)
	}

	step := steps[rng.IntN(len(steps))]

	// Pick a start so all six terms stay within the level bound.
	span := lc.Max - step*(seriesTermCount-1)
	start := 0
	if span > 0 {
		start = rng.IntN(span)
	}

	seq := make([]int, seriesTermCount)
	for i := range seq {
		seq[i] = start + i*step
	}

	// Blank out 1 or 2 distinct positions, 50/50.
	count := 1 + rng.IntN(2)
	missing := make([]int, 0, count)
	for len(missing) < count {
		idx := rng.IntN(seriesTermCount)
		if !containsInt(missing, idx) {
			missing = append(missing, idx)
		}
	}

	return &Question{
		Game:     store.GameSeries,
		Level:    level,
		Kind:     KindSeries,
		Prompt:   seriesPrompt(seq, missing),
		Sequence: seq,
		SkipStep: step,
		Missing:  missing,
	}, nil
}

// Check requires both the stride and every missing value to match.
func (Series) Check(q *Question, a Answer) bool {
	if a.SkipStep != q.SkipStep {
		return false
	}
	for _, idx := range q.Missing {
		if a.Values[idx] != q.Sequence[idx] {
			return false
		}
	}
	return true
}

// seriesPrompt renders the sequence with blanks, e.g. "2 4 _ 8 10 _".
func seriesPrompt(seq []int, missing []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		if containsInt(missing, i) {
			parts[i] = "_"
		} else {
			parts[i] = strconv.Itoa(v)
		}
	}
	return strings.Join(parts, " ")
}

// fittingSteps returns the strides whose six-term sequence fits
// within max.
func fittingSteps(steps []int, max int) []int {
	var out []int
	for _, s := range steps {
		if s*(seriesTermCount-1) <= max {
			out = append(out, s)
		}
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
