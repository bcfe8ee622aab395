package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/playmath/internal/session"
	"github.com/abhisek/playmath/internal/ui/theme"
)

func (g *GameScreen) View(width, height int) string {
	if g.errMsg != "" {
		return renderError(width, g.errMsg)
	}
	if !g.ready || g.session == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Getting ready...")
	}

	st := g.session.State()
	q := st.Question
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Round position line.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", st.QuestionCount, g.session.QuestionsPerLevel())))
	b.WriteString("\n\n")

	// The question itself.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.grid.View()))
	b.WriteString("\n\n")

	if g.grid.Submitted {
		b.WriteString(renderFeedback(width, st.LastOutcome, q.CorrectAnswer))
	}

	return b.String()
}

func renderFeedback(width int, outcome sess.Outcome, correct int) string {
	if outcome == sess.OutcomeCorrect {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("★ Correct! +10 points")
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render(fmt.Sprintf("Not quite! The answer is %d", correct))
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
