package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/progress"
	"github.com/abhisek/playmath/internal/router"
	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/screens/dashboard"
	"github.com/abhisek/playmath/internal/screens/game"
	"github.com/abhisek/playmath/internal/screens/series"
	"github.com/abhisek/playmath/internal/screens/settings"
	"github.com/abhisek/playmath/internal/store"
	"github.com/abhisek/playmath/internal/ui/components"
	"github.com/abhisek/playmath/internal/ui/theme"
)

// HomeScreen is the main menu: one entry per mini-game plus the
// parent dashboard and settings. It stays on the bottom of the screen
// stack for the whole run, so it keeps its progress and score columns
// current from the broadcast game events rather than re-reading the
// store.
type HomeScreen struct {
	st        *store.Store
	menu      components.Menu
	summaries map[store.GameID]progress.Summary
	scores    map[store.GameID]int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(st *store.Store) *HomeScreen {
	h := &HomeScreen{st: st}
	h.reload()
	return h
}

// reload re-reads per-game progress and scores from the store. Only
// needed at startup and after a full reset; in between, the broadcast
// events keep the cached values current.
func (h *HomeScreen) reload() {
	agg := progress.New(h.st.Progress())
	summaries, err := agg.All(context.Background())
	if err != nil {
		summaries = map[store.GameID]progress.Summary{}
	}
	h.summaries = summaries

	scores, err := h.st.Scores().All(context.Background())
	if err != nil {
		scores = map[store.GameID]int{}
	}
	h.scores = scores

	h.rebuildMenu()
}

// rebuildMenu rerenders the menu items from the cached summaries and
// scores, keeping the current selection.
func (h *HomeScreen) rebuildMenu() {
	selected := h.menu.Selected

	var items []components.MenuItem
	for _, id := range store.AllGames() {
		id := id
		detail := ""
		if s, ok := h.summaries[id]; ok && s.LastPlayed != nil {
			detail = fmt.Sprintf("%d%%", s.Percent)
			if score := h.scores[id]; score > 0 {
				detail = fmt.Sprintf("%d%% ★%d", s.Percent, score)
			}
		}
		items = append(items, components.MenuItem{
			Label:  id.Title(),
			Detail: detail,
			Action: func() tea.Cmd {
				return OpenGame(h.st, id)
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "Progress Dashboard", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(h.st)}
			}
		}},
		components.MenuItem{Label: "Settings", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(h.st)}
			}
		}},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

// OpenGame routes to the screen type matching the game's question
// kind: series gets the fill-in screen, everything else the grid.
func OpenGame(st *store.Store, id store.GameID) tea.Cmd {
	return func() tea.Msg {
		if id == store.GameSeries {
			return router.PushScreenMsg{Screen: series.New(st)}
		}
		return router.PushScreenMsg{Screen: game.New(st, id)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressChangedMsg:
		now := time.Now()
		h.summaries[msg.Game] = progress.Summary{Percent: msg.Percent, LastPlayed: &now}
		h.rebuildMenu()
		return h, nil

	case screen.ScoreChangedMsg:
		h.scores[msg.Game] = msg.Score
		h.rebuildMenu()
		return h, nil

	case screen.LevelCompletedMsg:
		h.rebuildMenu()
		return h, nil

	case screen.DataResetMsg:
		h.reload()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("PlayMath"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Numbers are fun!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	b.WriteString("\n")

	// Progress bars for games that have been played at least once.
	var bars []string
	for _, id := range store.AllGames() {
		s, ok := h.summaries[id]
		if !ok || s.LastPlayed == nil {
			continue
		}
		bars = append(bars, components.NewProgressBar(padTitle(id.Title()), s.Percent, 48).View())
	}
	if len(bars) > 0 {
		block := strings.Join(bars, "\n")
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	}

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// padTitle right-pads game titles so the bars line up.
func padTitle(t string) string {
	const w = 20
	if len(t) >= w {
		return t
	}
	return t + strings.Repeat(" ", w-len(t))
}
