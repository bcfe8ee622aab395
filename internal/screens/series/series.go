package series

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playmath/internal/games"
	"github.com/abhisek/playmath/internal/router"
	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/screens/levelup"
	sess "github.com/abhisek/playmath/internal/session"
	"github.com/abhisek/playmath/internal/sound"
	"github.com/abhisek/playmath/internal/store"
	"github.com/abhisek/playmath/internal/ui/components"
	"github.com/abhisek/playmath/internal/ui/layout"
)

const feedbackDelay = 1500 * time.Millisecond

// sessionReadyMsg is sent once the session is ready to play.
type sessionReadyMsg struct {
	Err error
}

// feedbackElapsedMsg fires after the correct-answer feedback delay.
// Seq pins it to its question; stale values are dropped.
type feedbackElapsedMsg struct {
	Seq int
}

// SeriesScreen runs a round of the skip-counting game. Each question
// shows a six-term sequence with one or two blanks; the player fills
// the blanks and names the stride.
type SeriesScreen struct {
	st      *store.Store
	session *sess.Session
	snd     sound.Player

	// One input per blank, in sequence order, then the stride input
	// last. focus indexes into this slice.
	inputs  []components.NumberInput
	indices []int // sequence index per blank input
	focus   int

	ready  bool
	errMsg string

	// notices buffers messages fired by session events during a
	// handler, flushed as commands when the handler returns.
	notices []tea.Msg
}

var _ screen.Screen = (*SeriesScreen)(nil)
var _ screen.KeyHintProvider = (*SeriesScreen)(nil)
var _ screen.StatusProvider = (*SeriesScreen)(nil)

// New creates the series screen.
func New(st *store.Store) *SeriesScreen {
	return &SeriesScreen{
		st:  st,
		snd: sound.Muted{},
	}
}

func (s *SeriesScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *SeriesScreen) Title() string {
	return store.GameSeries.Title()
}

// Status reports the level and score for the header.
func (s *SeriesScreen) Status() (int, int) {
	if s.session == nil {
		return 0, 0
	}
	st := s.session.State()
	return st.Level, st.Score
}

func (s *SeriesScreen) KeyHints() []layout.KeyHint {
	switch s.outcomePhase() {
	case sess.OutcomeRetry:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.OutcomeReveal:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next blank"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

// outcomePhase returns the outcome currently gating input, or
// OutcomeCorrect when the question is still open.
func (s *SeriesScreen) outcomePhase() sess.Outcome {
	if s.session == nil {
		return sess.OutcomeCorrect
	}
	st := s.session.State()
	if st.Phase != sess.PhaseAnswered {
		return sess.OutcomeCorrect
	}
	return st.LastOutcome
}

func (s *SeriesScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		strategy, err := games.Get(store.GameSeries)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}

		ctx := context.Background()
		settings, err := s.st.Settings().Get(ctx)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		s.snd = sound.ForSettings(settings.SoundEnabled, os.Stdout)

		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
		s.session = sess.New(s.st, strategy, s.events(), rng)
		if err := s.session.Start(ctx); err != nil {
			return sessionReadyMsg{Err: err}
		}
		return sessionReadyMsg{}
	}
}

// events buffers session callbacks as broadcast messages, drained by
// Update after each handler.
func (s *SeriesScreen) events() sess.Events {
	return sess.Events{
		OnProgressChanged: func(id store.GameID, percent int) {
			s.notices = append(s.notices, screen.ProgressChangedMsg{Game: id, Percent: percent})
		},
		OnScoreChanged: func(id store.GameID, score int) {
			s.notices = append(s.notices, screen.ScoreChangedMsg{Game: id, Score: score})
		},
		OnLevelCompleted: func(id store.GameID, level int, hasNext bool) {
			s.notices = append(s.notices, screen.LevelCompletedMsg{Game: id, Level: level, HasNext: hasNext})
		},
	}
}

func (s *SeriesScreen) flushNotices() tea.Cmd {
	if len(s.notices) == 0 {
		return nil
	}
	pending := s.notices
	s.notices = nil

	var cmds []tea.Cmd
	for _, msg := range pending {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Batch(cmds...)
}

func (s *SeriesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	scr, cmd := s.update(msg)
	if n := s.flushNotices(); n != nil {
		cmd = tea.Batch(cmd, n)
	}
	return scr, cmd
}

func (s *SeriesScreen) update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.ready = true
		s.resetInputs()
		return s, s.focusCmd()

	case feedbackElapsedMsg:
		return s.handleFeedbackElapsed(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SeriesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !s.ready {
		return s, nil
	}

	switch s.outcomePhase() {
	case sess.OutcomeRetry:
		if msg.String() == "enter" {
			if err := s.session.Retry(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			for i := range s.inputs {
				s.inputs[i].ClearGrade()
			}
		}
		return s, nil

	case sess.OutcomeReveal:
		if msg.String() == "enter" {
			if err := s.session.Acknowledge(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s.advance()
		}
		return s, nil
	}

	if s.session.State().Phase != sess.PhaseQuestion {
		// Correct-answer feedback is showing; the delayed transition
		// owns the flow.
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		return s, s.moveFocus(1)
	case "shift+tab", "up":
		return s, s.moveFocus(-1)
	case "enter":
		return s, s.submitAnswer()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *SeriesScreen) moveFocus(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	return s.focusCmd()
}

func (s *SeriesScreen) focusCmd() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[s.focus].Focus()
}

// submitAnswer collects the blanks and stride into an answer. Empty
// or unparsable inputs submit as wrong, which is what a blank answer
// sheet deserves.
func (s *SeriesScreen) submitAnswer() tea.Cmd {
	q := s.session.State().Question

	answer := games.Answer{Values: map[int]int{}}
	for i, idx := range s.indices {
		if v, err := s.inputs[i].Int(); err == nil {
			answer.Values[idx] = v
		} else {
			// An empty blank must never match, not even a zero term.
			answer.Values[idx] = q.Sequence[idx] - 1
		}
	}
	if v, err := s.inputs[len(s.inputs)-1].Int(); err == nil {
		answer.SkipStep = v
	} else {
		answer.SkipStep = 0
	}

	outcome, err := s.session.Submit(context.Background(), answer)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	// Grade each input for the ✓/✗ marks.
	for i, idx := range s.indices {
		s.inputs[i].Submit(answer.Values[idx] == q.Sequence[idx])
	}
	s.inputs[len(s.inputs)-1].Submit(answer.SkipStep == q.SkipStep)

	if outcome == sess.OutcomeCorrect {
		s.snd.Correct()
		seq := s.session.Seq()
		return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
			return feedbackElapsedMsg{Seq: seq}
		})
	}

	s.snd.Wrong()
	return nil
}

func (s *SeriesScreen) handleFeedbackElapsed(msg feedbackElapsedMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || msg.Seq != s.session.Seq() {
		return s, nil
	}
	return s.advance()
}

// advance serves the next question or hands over to the completion
// screen when the round is full.
func (s *SeriesScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.session.NextQuestion(context.Background()); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	switch s.session.State().Phase {
	case sess.PhaseQuestion:
		s.resetInputs()
		return s, s.focusCmd()
	case sess.PhaseLevelComplete, sess.PhaseAllComplete:
		return s, s.showLevelUp()
	}
	return s, nil
}

func (s *SeriesScreen) showLevelUp() tea.Cmd {
	st := s.session.State()
	summary := levelup.Summary{
		GameTitle:   store.GameSeries.Title(),
		Level:       st.Level,
		Correct:     st.Correct,
		Total:       s.session.QuestionsPerLevel(),
		AllComplete: st.Phase == sess.PhaseAllComplete,
	}

	resume := func() tea.Cmd {
		if err := s.session.AdvanceLevel(context.Background()); err != nil {
			s.errMsg = err.Error()
		}
		s.resetInputs()
		return tea.Batch(s.focusCmd(), func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: s}
		})
	}

	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: levelup.New(summary, resume)}
	}
}

// resetInputs rebuilds the blank and stride inputs for the active
// question.
func (s *SeriesScreen) resetInputs() {
	q := s.session.State().Question
	if q == nil {
		return
	}

	s.inputs = nil
	s.indices = append([]int(nil), q.Missing...)
	for range s.indices {
		s.inputs = append(s.inputs, components.NewNumberInput("", "?", 4))
	}
	s.inputs = append(s.inputs, components.NewNumberInput("Counting by", "?", 3))
	s.focus = 0
}
