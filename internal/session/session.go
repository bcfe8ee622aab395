package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/playmath/internal/games"
	"github.com/abhisek/playmath/internal/store"
)

// PointsPerCorrect is the fixed score increment for a correct answer.
const PointsPerCorrect = 10

// ErrNotAccepting is returned when an operation arrives in a phase
// that does not permit it, e.g. a double-submit while feedback is
// showing.
var ErrNotAccepting = errors.New("session: not accepting input in this phase")

// Session drives one game's lifecycle: level start, question
// generation, answer submission, feedback, level completion. It is an
// explicit object owned by the caller; no package-level state exists,
// so multiple sessions can run side by side and tests need no UI
// stubs.
type Session struct {
	id       string
	strategy games.Strategy
	store    *store.Store
	rng      *rand.Rand
	events   Events

	gameCfg  store.GameSettings
	roundCap int

	state State
}

// New creates a session for the given strategy. The caller supplies
// the RNG so tests can seed deterministically.
func New(st *store.Store, strategy games.Strategy, events Events, rng *rand.Rand) *Session {
	return &Session{
		id:       uuid.New().String(),
		strategy: strategy,
		store:    st,
		rng:      rng,
		events:   events,
	}
}

// ID returns the session's unique ID.
func (s *Session) ID() string {
	return s.id
}

// GameID returns the game this session plays.
func (s *Session) GameID() store.GameID {
	return s.strategy.ID()
}

// State returns the session's mutable runtime state.
func (s *Session) State() *State {
	return &s.state
}

// Seq returns the current question sequence number. Scheduled
// transitions capture it; HandleTimer-style callers compare before
// acting.
func (s *Session) Seq() int {
	return s.state.Seq
}

// QuestionsPerLevel returns the effective round size: the strategy's
// round size, capped by the parent's max-questions-per-round setting.
func (s *Session) QuestionsPerLevel() int {
	n := s.strategy.QuestionsPerLevel()
	if s.roundCap >= 1 && s.roundCap < n {
		return s.roundCap
	}
	return n
}

// Start loads the saved level and score, persists the level as
// current, and generates the first question.
func (s *Session) Start(ctx context.Context) error {
	settings, err := s.store.Settings().Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.gameCfg = settings.Games[s.GameID()]
	s.roundCap = settings.MaxQuestionsPerRound

	level, err := s.store.Levels().Get(ctx, s.GameID())
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	if level > s.strategy.MaxLevel() {
		level = s.strategy.MaxLevel()
	}

	score, err := s.store.Scores().Get(ctx, s.GameID())
	if err != nil {
		return fmt.Errorf("load score: %w", err)
	}

	s.state = State{Phase: PhaseLevelStart, Level: level, Score: score}
	return s.startLevel(ctx, level)
}

// startLevel persists the level, resets round counters, and serves
// the first question.
func (s *Session) startLevel(ctx context.Context, level int) error {
	if err := s.store.Levels().Set(ctx, s.GameID(), level); err != nil {
		return fmt.Errorf("persist level: %w", err)
	}
	s.state.Level = level
	s.state.QuestionCount = 0
	s.state.Correct = 0
	s.state.Phase = PhaseLevelStart
	return s.NextQuestion(ctx)
}

// NextQuestion transitions to the next question, or to level
// completion once the round is full.
func (s *Session) NextQuestion(ctx context.Context) error {
	switch s.state.Phase {
	case PhaseLevelStart, PhaseAnswered:
	default:
		return ErrNotAccepting
	}

	if s.state.QuestionCount >= s.QuestionsPerLevel() {
		return s.completeLevel(ctx)
	}

	q, err := s.strategy.Generate(s.state.Level, s.rng, s.gameCfg)
	if err != nil {
		return fmt.Errorf("generate question: %w", err)
	}

	s.state.Question = q
	s.state.QuestionCount++
	s.state.Attempts = 0
	s.state.Seq++
	s.state.Phase = PhaseQuestion
	return nil
}

// Submit checks an answer against the active question. Correct answers
// bump and persist the score immediately. Wrong answers on series
// questions climb the retry ladder: first attempt allows a retry,
// second reveals the answer.
func (s *Session) Submit(ctx context.Context, a games.Answer) (Outcome, error) {
	if s.state.Phase != PhaseQuestion || s.state.Question == nil {
		return OutcomeWrong, ErrNotAccepting
	}

	q := s.state.Question
	s.state.Phase = PhaseAnswered

	if s.strategy.Check(q, a) {
		s.state.Correct++
		s.state.Attempts = 0
		s.state.Score += PointsPerCorrect
		s.state.LastOutcome = OutcomeCorrect
		if err := s.store.Scores().Set(ctx, s.GameID(), s.state.Score); err != nil {
			return OutcomeCorrect, fmt.Errorf("persist score: %w", err)
		}
		s.events.scoreChanged(s.GameID(), s.state.Score)
		return OutcomeCorrect, nil
	}

	if q.Kind == games.KindSeries {
		s.state.Attempts++
		if s.state.Attempts == 1 {
			s.state.LastOutcome = OutcomeRetry
			return OutcomeRetry, nil
		}
		s.state.LastOutcome = OutcomeReveal
		return OutcomeReveal, nil
	}

	s.state.LastOutcome = OutcomeWrong
	return OutcomeWrong, nil
}

// Retry re-opens the active question after an OutcomeRetry. The
// question itself is unchanged; only the phase moves back.
func (s *Session) Retry() error {
	if s.state.Phase != PhaseAnswered || s.state.LastOutcome != OutcomeRetry {
		return ErrNotAccepting
	}
	s.state.Phase = PhaseQuestion
	return nil
}

// Acknowledge moves past a revealed answer. The next call to
// NextQuestion serves a fresh question.
func (s *Session) Acknowledge() error {
	if s.state.Phase != PhaseAnswered || s.state.LastOutcome != OutcomeReveal {
		return ErrNotAccepting
	}
	return nil
}

// completeLevel persists the round's completion percent, records the
// level achievement, and moves to LevelComplete or AllComplete.
func (s *Session) completeLevel(ctx context.Context) error {
	total := s.QuestionsPerLevel()
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(s.state.Correct) / float64(total) * 100))
	}

	if err := s.store.Progress().Set(ctx, s.GameID(), percent); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	s.events.progressChanged(s.GameID(), percent)

	achievementID := fmt.Sprintf("%s-level-%d", s.GameID(), s.state.Level)
	if _, err := s.store.Achievements().Add(ctx, achievementID); err != nil {
		return fmt.Errorf("record achievement: %w", err)
	}

	s.state.Question = nil
	s.state.Seq++
	s.state.HasNext = s.state.Level < s.strategy.MaxLevel()
	s.events.levelCompleted(s.GameID(), s.state.Level, s.state.HasNext)

	if s.state.HasNext {
		s.state.Phase = PhaseLevelComplete
		return nil
	}

	if _, err := s.store.Achievements().Add(ctx, fmt.Sprintf("%s-complete", s.GameID())); err != nil {
		return fmt.Errorf("record achievement: %w", err)
	}
	s.state.Phase = PhaseAllComplete
	return nil
}

// AdvanceLevel moves to the next level after LevelComplete.
func (s *Session) AdvanceLevel(ctx context.Context) error {
	if s.state.Phase != PhaseLevelComplete {
		return ErrNotAccepting
	}
	return s.startLevel(ctx, s.state.Level+1)
}
