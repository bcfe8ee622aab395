package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/parent"
	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/store"
	"github.com/abhisek/playmath/internal/ui/components"
	"github.com/abhisek/playmath/internal/ui/layout"
	"github.com/abhisek/playmath/internal/ui/theme"
)

// overviewLoadedMsg carries the freshly loaded overview.
type overviewLoadedMsg struct {
	Overview *parent.Overview
	Err      error
}

// actionDoneMsg reports the result of a reset or export. Reset marks
// a successful wipe so the other screens get told about it.
type actionDoneMsg struct {
	Status string
	Reset  bool
	Err    error
}

// DashboardScreen is the parent view: per-game stats, achievements,
// reset and export actions.
type DashboardScreen struct {
	st       *store.Store
	svc      *parent.Service
	overview *parent.Overview

	confirmingReset bool
	status          string
	errMsg          string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard screen.
func New(st *store.Store) *DashboardScreen {
	return &DashboardScreen{
		st:  st,
		svc: parent.NewService(st),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.loadOverview()
}

func (d *DashboardScreen) Title() string {
	return "Progress Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.confirmingReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Export"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) loadOverview() tea.Cmd {
	return func() tea.Msg {
		ov, err := d.svc.Overview(context.Background())
		return overviewLoadedMsg{Overview: ov, Err: err}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.overview = msg.Overview
		return d, nil

	case actionDoneMsg:
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.status = msg.Status
		if msg.Reset {
			return d, tea.Batch(d.loadOverview(), func() tea.Msg {
				return screen.DataResetMsg{}
			})
		}
		return d, d.loadOverview()

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if d.confirmingReset {
		switch key {
		case "y", "Y":
			d.confirmingReset = false
			return d, d.resetAll()
		case "n", "N", "esc":
			d.confirmingReset = false
		}
		return d, nil
	}

	switch key {
	case "r", "R":
		d.confirmingReset = true
		d.status = ""
	case "e", "E":
		d.status = ""
		return d, d.export()
	}
	return d, nil
}

func (d *DashboardScreen) resetAll() tea.Cmd {
	return func() tea.Msg {
		if err := d.svc.ResetAll(context.Background()); err != nil {
			return actionDoneMsg{Err: err}
		}
		return actionDoneMsg{Status: "All progress has been reset.", Reset: true}
	}
}

func (d *DashboardScreen) export() tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("playmath-export-%s.json", time.Now().Format("2006-01-02"))
		if err := d.svc.WriteSnapshot(context.Background(), path); err != nil {
			return actionDoneMsg{Err: err}
		}
		return actionDoneMsg{Status: fmt.Sprintf("Exported to %s", path)}
	}
}

func (d *DashboardScreen) View(width, height int) string {
	if d.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n  Error: %s", d.errMsg))
	}
	if d.overview == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	if d.confirmingReset {
		return renderResetConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	// Per-game rows: level, score, completion bar.
	var rows []string
	for _, id := range store.AllGames() {
		stats := d.overview.Stats[id]
		summary := d.overview.Progress[id]

		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(id.Title())
		info := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Level %d   Score %d%s", stats.Level, stats.Score, lastPlayed(summary.LastPlayed)))
		bar := components.NewProgressBar("", summary.Percent, 40).View()

		rows = append(rows, title+"\n"+info+"\n"+bar)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n\n")))
	b.WriteString("\n\n")

	// Achievements.
	if n := len(d.overview.Achievements); n > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("🏅 %d achievement%s earned", n, plural(n))))
		b.WriteString("\n")
	}

	if d.status != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(d.status))
	}

	return b.String()
}

func renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Reset all progress?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Scores, levels, and achievements will be cleared."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, reset everything"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep it"))
	return b.String()
}

func lastPlayed(t *time.Time) string {
	if t == nil {
		return "   Not played yet"
	}
	return "   Played " + t.Local().Format("Jan 2")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
