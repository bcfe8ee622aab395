package session

import (
	"github.com/abhisek/playmath/internal/games"
	"github.com/abhisek/playmath/internal/store"
)

// Phase is the session state machine phase.
type Phase int

const (
	PhaseLevelStart Phase = iota // level loaded, no question yet
	PhaseQuestion                // a question is active and accepting answers
	PhaseAnswered                // answer submitted, feedback showing
	PhaseLevelComplete           // round finished, next level available or not
	PhaseAllComplete             // terminal: every configured level cleared
)

// Outcome classifies a submitted answer.
type Outcome int

const (
	// OutcomeCorrect: answer matched; score was bumped and persisted.
	OutcomeCorrect Outcome = iota

	// OutcomeWrong: arithmetic-style miss; the round advances after
	// the feedback delay.
	OutcomeWrong

	// OutcomeRetry: first wrong attempt on a series question; the same
	// question may be retried.
	OutcomeRetry

	// OutcomeReveal: second consecutive wrong attempt on a series
	// question; the correct answer is revealed and must be
	// acknowledged before continuing.
	OutcomeReveal
)

// Events carries the callbacks a session fires toward the UI layer.
// Any field may be nil.
type Events struct {
	OnProgressChanged func(id store.GameID, percent int)
	OnScoreChanged    func(id store.GameID, score int)
	OnLevelCompleted  func(id store.GameID, level int, hasNext bool)
}

func (e Events) progressChanged(id store.GameID, percent int) {
	if e.OnProgressChanged != nil {
		e.OnProgressChanged(id, percent)
	}
}

func (e Events) scoreChanged(id store.GameID, score int) {
	if e.OnScoreChanged != nil {
		e.OnScoreChanged(id, score)
	}
}

func (e Events) levelCompleted(id store.GameID, level int, hasNext bool) {
	if e.OnLevelCompleted != nil {
		e.OnLevelCompleted(id, level, hasNext)
	}
}

// State is the working copy of a session's runtime state. The
// persistence store owns the canonical records; State is flushed to it
// after every scoring event, so a crash loses at most the in-progress
// round.
type State struct {
	Phase Phase

	// Level is the current level, persisted at level start.
	Level int

	// Score accumulates 10 points per correct answer within the play
	// history and is persisted immediately on each correct answer.
	Score int

	// QuestionCount is the number of questions generated in this
	// round. Strictly increases by 1 per question, never past the
	// round size.
	QuestionCount int

	// Correct counts correct answers within this round.
	Correct int

	// Question is the active question, nil outside a round.
	Question *games.Question

	// Attempts counts consecutive wrong attempts on the active series
	// question. Resets on every new question.
	Attempts int

	// LastOutcome is the outcome of the most recent submission.
	LastOutcome Outcome

	// HasNext is set at level completion: whether a further level is
	// configured.
	HasNext bool

	// Seq increments on every question transition. Scheduled UI
	// transitions capture it and are discarded when stale, so a timer
	// from a torn-down or advanced round can never mutate the session.
	Seq int
}
