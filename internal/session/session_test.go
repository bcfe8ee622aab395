package session

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/playmath/internal/games"
	"github.com/abhisek/playmath/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func newTestSession(t *testing.T, st *store.Store, id store.GameID, events Events) *Session {
	t.Helper()
	strat, err := games.Get(id)
	if err != nil {
		t.Fatalf("get strategy: %v", err)
	}
	return New(st, strat, events, testRNG())
}

// wrongChoice returns an option that is not the correct answer.
func wrongChoice(t *testing.T, q *games.Question) games.Answer {
	t.Helper()
	for _, opt := range q.Options {
		if opt != q.CorrectAnswer {
			return games.Answer{Value: opt}
		}
	}
	t.Fatal("no wrong option found")
	return games.Answer{}
}

func TestStartServesFirstQuestion(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, store.GameAddition, Events{})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	state := s.State()
	if state.Phase != PhaseQuestion {
		t.Errorf("phase = %v, want PhaseQuestion", state.Phase)
	}
	if state.Level != 1 {
		t.Errorf("level = %d, want 1", state.Level)
	}
	if state.QuestionCount != 1 {
		t.Errorf("question count = %d, want 1", state.QuestionCount)
	}
	if state.Question == nil {
		t.Fatal("expected an active question")
	}

	// Level 1 must be persisted as current.
	lvl, _ := st.Levels().Get(context.Background(), store.GameAddition)
	if lvl != 1 {
		t.Errorf("persisted level = %d, want 1", lvl)
	}
}

func TestCorrectAnswerScoresAndPersists(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var notified int
	events := Events{
		OnScoreChanged: func(id store.GameID, score int) { notified = score },
	}
	s := newTestSession(t, st, store.GameAddition, events)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := s.State().Question
	out, err := s.Submit(ctx, games.Answer{Value: q.CorrectAnswer})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeCorrect {
		t.Errorf("outcome = %v, want OutcomeCorrect", out)
	}
	if s.State().Score != PointsPerCorrect {
		t.Errorf("score = %d, want %d", s.State().Score, PointsPerCorrect)
	}
	if notified != PointsPerCorrect {
		t.Errorf("OnScoreChanged got %d, want %d", notified, PointsPerCorrect)
	}

	// Persisted immediately, before the round finishes.
	persisted, _ := st.Scores().Get(ctx, store.GameAddition)
	if persisted != PointsPerCorrect {
		t.Errorf("persisted score = %d, want %d", persisted, PointsPerCorrect)
	}
}

func TestWrongAnswerDoesNotScore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	out, err := s.Submit(ctx, wrongChoice(t, s.State().Question))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeWrong {
		t.Errorf("outcome = %v, want OutcomeWrong", out)
	}
	if s.State().Score != 0 {
		t.Errorf("score = %d, want 0", s.State().Score)
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := s.State().Question
	if _, err := s.Submit(ctx, games.Answer{Value: q.CorrectAnswer}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := s.Submit(ctx, games.Answer{Value: q.CorrectAnswer}); err != ErrNotAccepting {
		t.Errorf("second submit err = %v, want ErrNotAccepting", err)
	}
}

// The question counter increases by exactly 1 per question and the
// round completes at its configured size, never past it.
func TestQuestionCountMonotonicThroughRound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	max := s.QuestionsPerLevel()
	for i := 1; i <= max; i++ {
		if s.State().QuestionCount != i {
			t.Fatalf("question %d: count = %d", i, s.State().QuestionCount)
		}
		if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.NextQuestion(ctx); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	if s.State().Phase != PhaseLevelComplete {
		t.Errorf("phase = %v, want PhaseLevelComplete", s.State().Phase)
	}
	if s.State().QuestionCount != max {
		t.Errorf("final count = %d, want %d", s.State().QuestionCount, max)
	}
}

func TestPerfectRoundPersistsFullProgress(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var progressPercent int
	var completedLevel int
	var hasNext bool
	events := Events{
		OnProgressChanged: func(id store.GameID, p int) { progressPercent = p },
		OnLevelCompleted: func(id store.GameID, lvl int, next bool) {
			completedLevel = lvl
			hasNext = next
		},
	}
	s := newTestSession(t, st, store.GameAddition, events)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	for s.State().Phase == PhaseQuestion {
		if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := s.NextQuestion(ctx); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	if progressPercent != 100 {
		t.Errorf("OnProgressChanged percent = %d, want 100", progressPercent)
	}
	if completedLevel != 1 || !hasNext {
		t.Errorf("OnLevelCompleted = (%d, %v), want (1, true)", completedLevel, hasNext)
	}

	prog, _ := st.Progress().Get(ctx, store.GameAddition)
	if prog.Percent != 100 {
		t.Errorf("persisted percent = %d, want 100", prog.Percent)
	}
	if prog.LastPlayed == nil {
		t.Error("expected LastPlayed to be stamped")
	}
}

// A mixed round overwrites progress with that round's own accuracy.
func TestMixedRoundProgressIsRoundAccuracy(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	max := s.QuestionsPerLevel()
	for i := 0; i < max; i++ {
		var a games.Answer
		if i < 7 {
			a = games.Answer{Value: s.State().Question.CorrectAnswer}
		} else {
			a = wrongChoice(t, s.State().Question)
		}
		if _, err := s.Submit(ctx, a); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := s.NextQuestion(ctx); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	prog, _ := st.Progress().Get(ctx, store.GameAddition)
	if prog.Percent != 70 {
		t.Errorf("percent = %d, want 70", prog.Percent)
	}
}

func TestAdvanceLevelPersistsAndResumes(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	for s.State().Phase == PhaseQuestion {
		if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := s.NextQuestion(ctx); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	if err := s.AdvanceLevel(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.State().Level != 2 {
		t.Errorf("level = %d, want 2", s.State().Level)
	}
	if s.State().QuestionCount != 1 {
		t.Errorf("count = %d, want 1 (first question of new level)", s.State().QuestionCount)
	}

	// A fresh session resumes at the saved level.
	s2 := newTestSession(t, st, store.GameAddition, Events{})
	if err := s2.Start(ctx); err != nil {
		t.Fatalf("start second session: %v", err)
	}
	if s2.State().Level != 2 {
		t.Errorf("resumed level = %d, want 2", s2.State().Level)
	}
}

func TestLevelCompleteAwardsAchievement(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	for s.State().Phase == PhaseQuestion {
		if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if err := s.NextQuestion(ctx); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	list, _ := st.Achievements().All(ctx)
	found := false
	for _, a := range list {
		if a.ID == "addition-level-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("achievement addition-level-1 not recorded; got %+v", list)
	}
}

func TestAllLevelsCompleteIsTerminal(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	maxLevel := 3 // addition's configured levels
	for lvl := 1; lvl <= maxLevel; lvl++ {
		for s.State().Phase == PhaseQuestion {
			if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if err := s.NextQuestion(ctx); err != nil {
				t.Fatalf("next: %v", err)
			}
		}
		if lvl < maxLevel {
			if s.State().Phase != PhaseLevelComplete {
				t.Fatalf("level %d: phase = %v, want PhaseLevelComplete", lvl, s.State().Phase)
			}
			if err := s.AdvanceLevel(ctx); err != nil {
				t.Fatalf("advance: %v", err)
			}
		}
	}

	if s.State().Phase != PhaseAllComplete {
		t.Errorf("phase = %v, want PhaseAllComplete", s.State().Phase)
	}
	if s.State().HasNext {
		t.Error("HasNext = true at terminal state")
	}
	if err := s.AdvanceLevel(ctx); err != ErrNotAccepting {
		t.Errorf("advance past terminal err = %v, want ErrNotAccepting", err)
	}
}

func TestSeriesRetryLadder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameSeries, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := s.State().Question
	wrong := games.Answer{SkipStep: q.SkipStep + 1}

	// First wrong attempt allows a retry, not a reveal.
	out, err := s.Submit(ctx, wrong)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeRetry {
		t.Fatalf("first wrong outcome = %v, want OutcomeRetry", out)
	}

	if err := s.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.State().Phase != PhaseQuestion {
		t.Fatalf("phase after retry = %v, want PhaseQuestion", s.State().Phase)
	}
	if s.State().Question != q {
		t.Error("retry generated a new question; want the same one")
	}

	// Second consecutive wrong attempt reveals.
	out, err = s.Submit(ctx, wrong)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeReveal {
		t.Fatalf("second wrong outcome = %v, want OutcomeReveal", out)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	// The ladder resets on the next question.
	if err := s.NextQuestion(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	if s.State().Attempts != 0 {
		t.Errorf("attempts = %d after new question, want 0", s.State().Attempts)
	}
	out, err = s.Submit(ctx, games.Answer{SkipStep: s.State().Question.SkipStep + 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeRetry {
		t.Errorf("first wrong on fresh question = %v, want OutcomeRetry", out)
	}
}

func TestSeriesCorrectSubmission(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameSeries, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	q := s.State().Question
	values := make(map[int]int)
	for _, idx := range q.Missing {
		values[idx] = q.Sequence[idx]
	}
	out, err := s.Submit(ctx, games.Answer{SkipStep: q.SkipStep, Values: values})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out != OutcomeCorrect {
		t.Errorf("outcome = %v, want OutcomeCorrect", out)
	}

	score, _ := st.Scores().Get(ctx, store.GameSeries)
	if score != PointsPerCorrect {
		t.Errorf("persisted score = %d, want %d", score, PointsPerCorrect)
	}
}

func TestRoundCapFromSettings(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	settings := store.DefaultSettings()
	settings.MaxQuestionsPerRound = 3
	if err := st.Settings().Save(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := s.QuestionsPerLevel(); got != 3 {
		t.Errorf("round size = %d, want 3", got)
	}
}

func TestSeqAdvancesPerQuestion(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, st, store.GameAddition, Events{})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	seq := s.Seq()
	if _, err := s.Submit(ctx, games.Answer{Value: s.State().Question.CorrectAnswer}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.NextQuestion(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	if s.Seq() == seq {
		t.Error("seq did not advance with the next question")
	}
}
