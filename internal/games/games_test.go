package games

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/playmath/internal/store"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestRegistryCoversAllGames(t *testing.T) {
	reg := Registry()
	for _, id := range store.AllGames() {
		strat, ok := reg[id]
		if !ok {
			t.Errorf("no strategy registered for %q", id)
			continue
		}
		if strat.ID() != id {
			t.Errorf("strategy for %q reports ID %q", id, strat.ID())
		}
	}
}

func TestGetUnknownGame(t *testing.T) {
	if _, err := Get(store.GameID("tictactoe")); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestValidateLevels(t *testing.T) {
	if err := ValidateLevels(); err != nil {
		t.Errorf("level tables invalid: %v", err)
	}
}

// Options must be pairwise distinct and contain the correct answer
// exactly once, across every level and many generations.
func TestChoiceOptionsDistinctAndContainAnswer(t *testing.T) {
	rng := testRNG(1)
	for _, strat := range []Strategy{Addition{}, Subtraction{}, NumberRecognition{}} {
		for level := 1; level <= strat.MaxLevel(); level++ {
			for i := 0; i < 200; i++ {
				q, err := strat.Generate(level, rng, store.GameSettings{})
				if err != nil {
					t.Fatalf("%s level %d: %v", strat.ID(), level, err)
				}
				if len(q.Options) != 4 {
					t.Fatalf("%s level %d: %d options, want 4", strat.ID(), level, len(q.Options))
				}
				matches := 0
				seen := map[int]bool{}
				for _, opt := range q.Options {
					if seen[opt] {
						t.Fatalf("%s level %d: duplicate option %d in %v", strat.ID(), level, opt, q.Options)
					}
					seen[opt] = true
					if opt == q.CorrectAnswer {
						matches++
					}
				}
				if matches != 1 {
					t.Fatalf("%s level %d: correct answer appears %d times in %v",
						strat.ID(), level, matches, q.Options)
				}
			}
		}
	}
}

func TestAdditionOperandsWithinLevelRange(t *testing.T) {
	rng := testRNG(2)
	for level, lc := range additionLevels {
		for i := 0; i < 100; i++ {
			q, err := Addition{}.Generate(level, rng, store.GameSettings{})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			for _, op := range q.Operands {
				if op < lc.Min || op > lc.Max {
					t.Fatalf("level %d: operand %d outside [%d,%d]", level, op, lc.Min, lc.Max)
				}
			}
			if q.CorrectAnswer != q.Operands[0]+q.Operands[1] {
				t.Fatalf("level %d: answer %d != %d + %d", level, q.CorrectAnswer, q.Operands[0], q.Operands[1])
			}
		}
	}
}

// The subtraction generator must never produce a result below the
// level's MinResult.
func TestSubtractionNeverBelowMinResult(t *testing.T) {
	rng := testRNG(3)
	for level, lc := range subtractionLevels {
		for i := 0; i < 500; i++ {
			q, err := Subtraction{}.Generate(level, rng, store.GameSettings{})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if q.CorrectAnswer < lc.MinResult {
				t.Fatalf("level %d: %d - %d = %d below MinResult %d",
					level, q.Operands[0], q.Operands[1], q.CorrectAnswer, lc.MinResult)
			}
		}
	}
}

func TestSubtractionAllowNegative(t *testing.T) {
	rng := testRNG(4)
	sawNegative := false
	for i := 0; i < 2000; i++ {
		q, err := Subtraction{}.Generate(1, rng, store.GameSettings{AllowNegative: true})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if q.CorrectAnswer < 0 {
			sawNegative = true
			break
		}
	}
	if !sawNegative {
		t.Error("expected at least one negative result with AllowNegative")
	}
}

func TestMaxNumberOverrideWidensRange(t *testing.T) {
	rng := testRNG(5)
	sawAboveDefault := false
	for i := 0; i < 500; i++ {
		q, err := Addition{}.Generate(1, rng, store.GameSettings{MaxNumber: 50})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, op := range q.Operands {
			if op > additionLevels[1].Max {
				sawAboveDefault = true
			}
			if op > 50 {
				t.Fatalf("operand %d exceeds override 50", op)
			}
		}
	}
	if !sawAboveDefault {
		t.Error("override never widened the operand range")
	}
}

func TestChoiceCheck(t *testing.T) {
	q := &Question{Kind: KindChoice, CorrectAnswer: 7}
	if !(Addition{}).Check(q, Answer{Value: 7}) {
		t.Error("correct value rejected")
	}
	if (Addition{}).Check(q, Answer{Value: 8}) {
		t.Error("wrong value accepted")
	}
}

// Every generated series must have a constant stride equal to
// SkipStep, stay within the level bound, and blank 1 or 2 positions.
func TestSeriesGeneration(t *testing.T) {
	rng := testRNG(6)
	for level, lc := range seriesLevels {
		for i := 0; i < 200; i++ {
			q, err := Series{}.Generate(level, rng, store.GameSettings{})
			if err != nil {
				t.Fatalf("level %d: %v", level, err)
			}
			if len(q.Sequence) != seriesTermCount {
				t.Fatalf("level %d: %d terms, want %d", level, len(q.Sequence), seriesTermCount)
			}
			if !containsInt(lc.SkipSteps, q.SkipStep) {
				t.Fatalf("level %d: stride %d not in %v", level, q.SkipStep, lc.SkipSteps)
			}
			for j := 1; j < len(q.Sequence); j++ {
				if q.Sequence[j]-q.Sequence[j-1] != q.SkipStep {
					t.Fatalf("level %d: stride broken at %d: %v", level, j, q.Sequence)
				}
			}
			last := q.Sequence[len(q.Sequence)-1]
			if last > lc.Max {
				t.Fatalf("level %d: term %d exceeds max %d", level, last, lc.Max)
			}
			if n := len(q.Missing); n < 1 || n > 2 {
				t.Fatalf("level %d: %d missing positions", level, n)
			}
			if len(q.Missing) == 2 && q.Missing[0] == q.Missing[1] {
				t.Fatalf("level %d: duplicate missing index %d", level, q.Missing[0])
			}
			for _, idx := range q.Missing {
				if idx < 0 || idx >= seriesTermCount {
					t.Fatalf("level %d: missing index %d out of range", level, idx)
				}
			}
		}
	}
}

func TestSeriesMaxOverrideKeepsTermsInBound(t *testing.T) {
	rng := testRNG(11)

	// Level 1 allows strides 1 and 2; an override of 5 leaves room
	// only for stride 1 (0..5). Every term must respect the override.
	for i := 0; i < 500; i++ {
		q, err := Series{}.Generate(1, rng, store.GameSettings{MaxNumber: 5})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if q.SkipStep != 1 {
			t.Fatalf("stride %d does not fit bound 5 (seq %v)", q.SkipStep, q.Sequence)
		}
		if last := q.Sequence[len(q.Sequence)-1]; last > 5 {
			t.Fatalf("term %d exceeds override max 5 (seq %v)", last, q.Sequence)
		}
	}
}

func TestSeriesUnusableOverrideFallsBackToLevelBound(t *testing.T) {
	rng := testRNG(12)

	// An override of 3 fits no stride at all (even stride 1 needs
	// six terms spanning 5); the level's own bound applies instead.
	for i := 0; i < 500; i++ {
		q, err := Series{}.Generate(1, rng, store.GameSettings{MaxNumber: 3})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !containsInt(seriesLevels[1].SkipSteps, q.SkipStep) {
			t.Fatalf("stride %d not in level table %v", q.SkipStep, seriesLevels[1].SkipSteps)
		}
		if last := q.Sequence[len(q.Sequence)-1]; last > seriesLevels[1].Max {
			t.Fatalf("term %d exceeds level max %d (seq %v)", last, seriesLevels[1].Max, q.Sequence)
		}
	}
}

func TestSeriesCheck(t *testing.T) {
	q := &Question{
		Kind:     KindSeries,
		Sequence: []int{2, 4, 6, 8, 10, 12},
		SkipStep: 2,
		Missing:  []int{1, 4},
	}

	correct := Answer{SkipStep: 2, Values: map[int]int{1: 4, 4: 10}}
	if !(Series{}).Check(q, correct) {
		t.Error("fully correct answer rejected")
	}

	wrongStride := Answer{SkipStep: 3, Values: map[int]int{1: 4, 4: 10}}
	if (Series{}).Check(q, wrongStride) {
		t.Error("wrong stride accepted despite correct values")
	}

	wrongValue := Answer{SkipStep: 2, Values: map[int]int{1: 4, 4: 11}}
	if (Series{}).Check(q, wrongValue) {
		t.Error("wrong missing value accepted despite correct stride")
	}

	missingValue := Answer{SkipStep: 2, Values: map[int]int{1: 4}}
	if (Series{}).Check(q, missingValue) {
		t.Error("incomplete answer accepted")
	}
}

func TestSeriesPromptBlanksMissing(t *testing.T) {
	got := seriesPrompt([]int{1, 2, 3, 4, 5, 6}, []int{0, 5})
	want := "_ 2 3 4 5 _"
	if got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

// A degenerate one-value window must still yield four distinct
// options via the widening fallback, without looping forever.
func TestBuildOptionsDegenerateWindow(t *testing.T) {
	rng := testRNG(7)
	opts := buildOptions(3, 3, 3, rng)
	if len(opts) != 4 {
		t.Fatalf("got %d options, want 4", len(opts))
	}
	seen := map[int]bool{}
	for _, o := range opts {
		if seen[o] {
			t.Fatalf("duplicate option %d in %v", o, opts)
		}
		seen[o] = true
	}
	if !seen[3] {
		t.Errorf("correct answer missing from %v", opts)
	}
}
