package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/parent"
	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/store"
	"github.com/abhisek/playmath/internal/ui/layout"
	"github.com/abhisek/playmath/internal/ui/theme"
)

// settingsLoadedMsg carries the stored settings into the screen.
type settingsLoadedMsg struct {
	Settings store.Settings
	Err      error
}

// savedMsg reports the save result.
type savedMsg struct {
	Err error
}

// row identifies one editable line.
type row int

const (
	rowSound row = iota
	rowDifficulty
	rowRoundSize
	rowAdditionMax
	rowSubtractionMax
	rowAllowNegative
	rowNumberRecMax
	rowCount
)

// SettingsScreen edits the stored settings. Changes are staged in
// memory and written wholesale on save.
type SettingsScreen struct {
	st       *store.Store
	svc      *parent.Service
	settings store.Settings
	loaded   bool
	selected row
	status   string
	errMsg   string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen.
func New(st *store.Store) *SettingsScreen {
	return &SettingsScreen{
		st:  st,
		svc: parent.NewService(st),
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.st.Settings().Get(context.Background())
		return settingsLoadedMsg{Settings: settings, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.settings = msg.Settings
		s.loaded = true
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = "Saved."
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if !s.loaded {
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}
	case "left", "h":
		s.adjust(-1)
		s.status = ""
	case "right", "l":
		s.adjust(1)
		s.status = ""
	case "enter":
		return s, s.save()
	}
	return s, nil
}

// adjust applies a step to the selected row. Booleans toggle on any
// step; numbers move within their allowed range.
func (s *SettingsScreen) adjust(delta int) {
	switch s.selected {
	case rowSound:
		s.settings.SoundEnabled = !s.settings.SoundEnabled

	case rowDifficulty:
		s.settings.Difficulty = cycleDifficulty(s.settings.Difficulty, delta)

	case rowRoundSize:
		s.settings.MaxQuestionsPerRound = clamp(s.settings.MaxQuestionsPerRound+delta, 1, 20)

	case rowAdditionMax:
		s.adjustGameMax(store.GameAddition, delta*5, 5, 100)

	case rowSubtractionMax:
		s.adjustGameMax(store.GameSubtraction, delta*5, 5, 100)

	case rowAllowNegative:
		gs := s.settings.Games[store.GameSubtraction]
		gs.AllowNegative = !gs.AllowNegative
		s.setGame(store.GameSubtraction, gs)

	case rowNumberRecMax:
		s.adjustGameMax(store.GameNumberRecognition, delta*5, 5, 100)
	}
}

func (s *SettingsScreen) adjustGameMax(id store.GameID, delta, lo, hi int) {
	gs := s.settings.Games[id]
	gs.MaxNumber = clamp(gs.MaxNumber+delta, lo, hi)
	s.setGame(id, gs)
}

func (s *SettingsScreen) setGame(id store.GameID, gs store.GameSettings) {
	if s.settings.Games == nil {
		s.settings.Games = map[store.GameID]store.GameSettings{}
	}
	s.settings.Games[id] = gs
}

func (s *SettingsScreen) save() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{Err: s.svc.SaveSettings(context.Background(), s.settings)}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n  Error: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	rows := []struct {
		row   row
		label string
		value string
	}{
		{rowSound, "Sound", onOff(s.settings.SoundEnabled)},
		{rowDifficulty, "Difficulty", string(s.settings.Difficulty)},
		{rowRoundSize, "Questions per round", fmt.Sprintf("%d", s.settings.MaxQuestionsPerRound)},
		{rowAdditionMax, "Addition: biggest number", fmt.Sprintf("%d", s.settings.Games[store.GameAddition].MaxNumber)},
		{rowSubtractionMax, "Subtraction: biggest number", fmt.Sprintf("%d", s.settings.Games[store.GameSubtraction].MaxNumber)},
		{rowAllowNegative, "Subtraction: allow negatives", onOff(s.settings.Games[store.GameSubtraction].AllowNegative)},
		{rowNumberRecMax, "Number Ninja: biggest number", fmt.Sprintf("%d", s.settings.Games[store.GameNumberRecognition].MaxNumber)},
	}

	var lines []string
	for _, r := range rows {
		label := r.label
		for len(label) < 30 {
			label += " "
		}
		line := fmt.Sprintf("  %s ◂ %s ▸", label, r.value)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if r.row == s.selected {
			line = "▸" + line[1:]
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(line))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	b.WriteString("\n\n")

	if s.status != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(s.status))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter to save changes"))
	}

	return b.String()
}

func cycleDifficulty(d store.Difficulty, delta int) store.Difficulty {
	order := []store.Difficulty{store.DifficultyEasy, store.DifficultyMedium, store.DifficultyHard}
	idx := 0
	for i, v := range order {
		if v == d {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return order[idx]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
