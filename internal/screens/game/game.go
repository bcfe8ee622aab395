package game

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

// feedbackDelay is how long the answer feedback stays on screen
// before the next question appears.
const feedbackDelay = 1500 * time.Millisecond

// GameScreen runs a round of a choice-based game: addition,
// subtraction, or number recognition.
type GameScreen struct {
	st      *store.Store
	gameID  store.GameID
	session *sess.Session
	grid    components.OptionGrid
	snd     sound.Player
	ready   bool
	errMsg  string

	// notices buffers messages fired by session events during a
	// handler, flushed as commands when the handler returns.
	notices []tea.Msg
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a screen for the given game. The session is created
// eagerly but only started in Init.
func New(st *store.Store, id store.GameID) *GameScreen {
	return &GameScreen{
		st:     st,
		gameID: id,
		snd:    sound.Muted{},
	}
}

func (g *GameScreen) Init() tea.Cmd {
	return g.startSession()
}

func (g *GameScreen) Title() string {
	return g.gameID.Title()
}

// Status reports the level and score for the header.
func (g *GameScreen) Status() (int, int) {
	if g.session == nil {
		return 0, 0
	}
	st := g.session.State()
	return st.Level, st.Score
}

func (g *GameScreen) KeyHints() []layout.KeyHint {
	if g.ready && !g.grid.Submitted {
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→↑↓", Description: "Move"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

// startSession loads saved state and serves the first question.
func (g *GameScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		strategy, err := games.Get(g.gameID)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}

		ctx := context.Background()
		settings, err := g.st.Settings().Get(ctx)
		if err != nil {
			return sessionReadyMsg{Err: err}
		}
		g.snd = sound.ForSettings(settings.SoundEnabled, os.Stdout)

		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
		g.session = sess.New(g.st, strategy, g.events(), rng)
		if err := g.session.Start(ctx); err != nil {
			return sessionReadyMsg{Err: err}
		}
		return sessionReadyMsg{}
	}
}

// events buffers session callbacks as broadcast messages. The session
// fires them synchronously inside this screen's handlers, so Update
// drains the buffer once the handler settles.
func (g *GameScreen) events() sess.Events {
	return sess.Events{
		OnProgressChanged: func(id store.GameID, percent int) {
			g.notices = append(g.notices, screen.ProgressChangedMsg{Game: id, Percent: percent})
		},
		OnScoreChanged: func(id store.GameID, score int) {
			g.notices = append(g.notices, screen.ScoreChangedMsg{Game: id, Score: score})
		},
		OnLevelCompleted: func(id store.GameID, level int, hasNext bool) {
			g.notices = append(g.notices, screen.LevelCompletedMsg{Game: id, Level: level, HasNext: hasNext})
		},
	}
}

// flushNotices drains buffered event messages into commands so the
// router can broadcast them to the rest of the stack.
func (g *GameScreen) flushNotices() tea.Cmd {
	if len(g.notices) == 0 {
		return nil
	}
	pending := g.notices
	g.notices = nil

	var cmds []tea.Cmd
	for _, msg := range pending {
		msg := msg
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Batch(cmds...)
}

func (g *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	scr, cmd := g.update(msg)
	if n := g.flushNotices(); n != nil {
		cmd = tea.Batch(cmd, n)
	}
	return scr, cmd
}

func (g *GameScreen) update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			g.errMsg = msg.Err.Error()
			return g, nil
		}
		g.ready = true
		g.resetGrid()
		return g, nil

	case feedbackElapsedMsg:
		return g.handleFeedbackElapsed(msg)

	case tea.KeyMsg:
		return g.handleKey(msg)
	}

	return g, nil
}

func (g *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if g.errMsg != "" {
		return g, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if !g.ready || g.grid.Submitted {
		// Feedback is showing; the delayed transition owns the flow.
		return g, nil
	}

	wasSubmitted := g.grid.Submitted
	var cmd tea.Cmd
	g.grid, cmd = g.grid.Update(msg)

	if g.grid.Submitted && !wasSubmitted {
		return g, g.submitAnswer()
	}
	return g, cmd
}

// submitAnswer grades the grid's pick and schedules the follow-up
// transition for after the feedback delay.
func (g *GameScreen) submitAnswer() tea.Cmd {
	outcome, err := g.session.Submit(context.Background(), games.Answer{Value: g.grid.ChosenValue()})
	if err != nil {
		g.errMsg = err.Error()
		return nil
	}

	if outcome == sess.OutcomeCorrect {
		g.snd.Correct()
	} else {
		g.snd.Wrong()
	}

	seq := g.session.Seq()
	return tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackElapsedMsg{Seq: seq}
	})
}

func (g *GameScreen) handleFeedbackElapsed(msg feedbackElapsedMsg) (screen.Screen, tea.Cmd) {
	if g.session == nil || msg.Seq != g.session.Seq() {
		return g, nil
	}

	if err := g.session.NextQuestion(context.Background()); err != nil {
		g.errMsg = err.Error()
		return g, nil
	}

	switch g.session.State().Phase {
	case sess.PhaseQuestion:
		g.resetGrid()
		return g, nil
	case sess.PhaseLevelComplete, sess.PhaseAllComplete:
		return g, g.showLevelUp()
	}
	return g, nil
}

// showLevelUp swaps this screen for the completion screen. Resume
// advances the level on the shared session and swaps back.
func (g *GameScreen) showLevelUp() tea.Cmd {
	st := g.session.State()
	summary := levelup.Summary{
		GameTitle:   g.gameID.Title(),
		Level:       st.Level,
		Correct:     st.Correct,
		Total:       g.session.QuestionsPerLevel(),
		AllComplete: st.Phase == sess.PhaseAllComplete,
	}

	resume := func() tea.Cmd {
		if err := g.session.AdvanceLevel(context.Background()); err != nil {
			g.errMsg = err.Error()
		}
		g.resetGrid()
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: g}
		}
	}

	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: levelup.New(summary, resume)}
	}
}

// resetGrid rebuilds the option grid for the active question.
func (g *GameScreen) resetGrid() {
	q := g.session.State().Question
	if q == nil {
		return
	}
	g.grid = components.NewOptionGrid(q.Options, q.CorrectAnswer)
}
