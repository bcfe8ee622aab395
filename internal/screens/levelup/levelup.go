package levelup

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/router"
	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/ui/layout"
	"github.com/abhisek/playmath/internal/ui/theme"
)

// Summary describes the round that just finished.
type Summary struct {
	GameTitle   string
	Level       int
	Correct     int
	Total       int
	AllComplete bool
}

// Percent is the round score as a whole-number percentage.
func (s Summary) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// LevelUpScreen celebrates a completed level. Resume advances to the
// next level; it is nil once every level is cleared.
type LevelUpScreen struct {
	summary Summary
	resume  func() tea.Cmd
}

var _ screen.Screen = (*LevelUpScreen)(nil)
var _ screen.KeyHintProvider = (*LevelUpScreen)(nil)

// New creates the completion screen.
func New(summary Summary, resume func() tea.Cmd) *LevelUpScreen {
	if summary.AllComplete {
		resume = nil
	}
	return &LevelUpScreen{summary: summary, resume: resume}
}

func (l *LevelUpScreen) Init() tea.Cmd {
	return nil
}

func (l *LevelUpScreen) Title() string {
	return l.summary.GameTitle
}

func (l *LevelUpScreen) KeyHints() []layout.KeyHint {
	if l.resume != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next level"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (l *LevelUpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if kmsg.String() == "enter" {
		if l.resume != nil {
			return l, l.resume()
		}
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return l, nil
}

func (l *LevelUpScreen) View(width, height int) string {
	s := l.summary

	var b strings.Builder
	b.WriteString("\n\n")

	if s.AllComplete {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("🏆 You beat every level!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("🎉 Level %d complete!", s.Level)))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("You got %d out of %d right (%d%%)", s.Correct, s.Total, s.Percent())))
	b.WriteString("\n\n")

	if l.resume != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Primary).
			Render(fmt.Sprintf("Press Enter for level %d", s.Level+1)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter to go home"))
	}

	return b.String()
}
