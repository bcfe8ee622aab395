package games

import "math/rand/v2"

const (
	// optionCount is the number of presented answer options.
	optionCount = 4

	// maxOptionDraws bounds the random sampling phase before the
	// window is relaxed. Narrow level ranges could otherwise loop
	// forever.
	maxOptionDraws = 48
)

// buildOptions returns optionCount pairwise-distinct values in random
// order, exactly one of which equals correct. Distractors are drawn
// uniformly from [lo, hi]; if the window cannot yield enough distinct
// values within maxOptionDraws draws, it falls back to sweeping
// outward from correct, relaxing the bounds.
func buildOptions(correct, lo, hi int, rng *rand.Rand) []int {
	opts := []int{correct}
	seen := map[int]bool{correct: true}

	for draws := 0; len(opts) < optionCount && draws < maxOptionDraws; draws++ {
		v := intBetween(lo, hi, rng)
		if !seen[v] {
			seen[v] = true
			opts = append(opts, v)
		}
	}

	// Degenerate window: fill deterministically, stepping outward from
	// the correct answer past the original bounds.
	for offset := 1; len(opts) < optionCount; offset++ {
		for _, v := range []int{correct - offset, correct + offset} {
			if len(opts) == optionCount {
				break
			}
			if !seen[v] {
				seen[v] = true
				opts = append(opts, v)
			}
		}
	}

	shuffle(opts, rng)
	return opts
}
