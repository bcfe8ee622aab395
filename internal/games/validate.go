package games

import "fmt"

// ValidateLevels checks every level table at definition time: each
// choice-game level must admit four distinct answer options without
// relying on the sampling fallback, each series level must fit a full
// sequence for its largest stride, and level numbers must be
// contiguous from 1. Called from the root command so a bad table fails
// fast instead of degrading rounds at play time.
func ValidateLevels() error {
	if err := validateContiguous("addition", additionLevels); err != nil {
		return err
	}
	if err := validateContiguous("subtraction", subtractionLevels); err != nil {
		return err
	}
	if err := validateContiguous("number-recognition", numberRecLevels); err != nil {
		return err
	}
	if err := validateContiguous("series", seriesLevels); err != nil {
		return err
	}

	for lvl, lc := range additionLevels {
		if lc.Max <= lc.Min {
			return fmt.Errorf("addition level %d: empty range [%d,%d]", lvl, lc.Min, lc.Max)
		}
	}
	for lvl, lc := range subtractionLevels {
		if lc.Max <= lc.Min {
			return fmt.Errorf("subtraction level %d: empty range [%d,%d]", lvl, lc.Min, lc.Max)
		}
		// The distractor window is clipped to [MinResult, Max]; it must
		// still hold four distinct values.
		if lc.Max-lc.MinResult+1 < optionCount {
			return fmt.Errorf("subtraction level %d: fewer than %d values in [%d,%d]",
				lvl, optionCount, lc.MinResult, lc.Max)
		}
	}
	for lvl, lc := range numberRecLevels {
		if lc.Max-lc.Min+1 < optionCount {
			return fmt.Errorf("number-recognition level %d: fewer than %d values in [%d,%d]",
				lvl, optionCount, lc.Min, lc.Max)
		}
	}
	for lvl, lc := range seriesLevels {
		if len(lc.SkipSteps) == 0 {
			return fmt.Errorf("series level %d: no strides configured", lvl)
		}
		for _, step := range lc.SkipSteps {
			if step < 1 {
				return fmt.Errorf("series level %d: invalid stride %d", lvl, step)
			}
			if step*(seriesTermCount-1) > lc.Max {
				return fmt.Errorf("series level %d: stride %d overflows max %d",
					lvl, step, lc.Max)
			}
		}
	}
	return nil
}

func validateContiguous(name string, levels map[int]levelConfig) error {
	for i := 1; i <= len(levels); i++ {
		if _, ok := levels[i]; !ok {
			return fmt.Errorf("%s: level %d missing from table", name, i)
		}
	}
	return nil
}
