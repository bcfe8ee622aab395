package series

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/playmath/internal/session"
	"github.com/abhisek/playmath/internal/ui/theme"
)

func (s *SeriesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if !s.ready || s.session == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Getting ready...")
	}

	st := s.session.State()
	q := st.Question
	if q == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", st.QuestionCount, s.session.QuestionsPerLevel())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("Fill in the missing numbers:"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderSequence(q.Sequence, q.Missing)))
	b.WriteString("\n\n")

	// Inputs: one per blank, stride last.
	var lines []string
	for i := range s.inputs {
		marker := "  "
		if i == s.focus && st.Phase == sess.PhaseQuestion {
			marker = "▸ "
		}
		label := ""
		if i < len(s.indices) {
			label = fmt.Sprintf("Blank %d", i+1)
		}
		line := marker + label
		if label != "" {
			line += "  "
		}
		line += s.inputs[i].View()
		lines = append(lines, line)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	switch s.outcomePhase() {
	case sess.OutcomeRetry:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Almost! Press Enter to try again"))
	case sess.OutcomeReveal:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Here is the answer:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("%s  (counting by %d)", joinInts(q.Sequence), q.SkipStep)))
	default:
		if st.Phase == sess.PhaseAnswered && st.LastOutcome == sess.OutcomeCorrect {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render("★ Correct! +10 points"))
		}
	}

	return b.String()
}

// renderSequence draws the six terms as cards, blanks highlighted.
func (s *SeriesScreen) renderSequence(seq []int, missing []int) string {
	cards := make([]string, 0, len(seq))
	for i, v := range seq {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Text).
			Padding(0, 2).
			Margin(0, 1)

		text := strconv.Itoa(v)
		if isMissing(missing, i) {
			text = "?"
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		cards = append(cards, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func isMissing(missing []int, i int) bool {
	for _, m := range missing {
		if m == i {
			return true
		}
	}
	return false
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
