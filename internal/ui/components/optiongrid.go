package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/ui/theme"
)

// OptionGrid presents the four answer choices of a question as a 2x2
// grid of cards. After submission the grid locks: the correct option is
// highlighted green and a wrong pick red.
type OptionGrid struct {
	Options      []int
	CorrectValue int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewOptionGrid creates a grid for the given options.
func NewOptionGrid(options []int, correctValue int) OptionGrid {
	return OptionGrid{
		Options:      options,
		CorrectValue: correctValue,
		Selected:     0,
		Submitted:    false,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (g OptionGrid) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Input is ignored
// once an answer has been submitted.
func (g OptionGrid) Update(msg tea.Msg) (OptionGrid, tea.Cmd) {
	if g.Submitted {
		return g, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if g.Selected%2 == 1 {
			g.Selected--
		}
	case "right", "l":
		if g.Selected%2 == 0 && g.Selected+1 < len(g.Options) {
			g.Selected++
		}
	case "up", "k":
		if g.Selected >= 2 {
			g.Selected -= 2
		}
	case "down", "j":
		if g.Selected+2 < len(g.Options) {
			g.Selected += 2
		}
	case "1", "2", "3", "4":
		idx := int(kmsg.String()[0] - '1')
		if idx < len(g.Options) {
			g.Selected = idx
			g.Submitted = true
			g.ChosenIndex = idx
		}
	case "enter":
		g.Submitted = true
		g.ChosenIndex = g.Selected
	}

	return g, nil
}

// ChosenValue returns the submitted option value. Only meaningful when
// Submitted is true.
func (g OptionGrid) ChosenValue() int {
	if g.ChosenIndex < 0 || g.ChosenIndex >= len(g.Options) {
		return 0
	}
	return g.Options[g.ChosenIndex]
}

// IsCorrect returns true if the chosen option matches the correct value.
func (g OptionGrid) IsCorrect() bool {
	return g.Submitted && g.ChosenValue() == g.CorrectValue
}

// View renders the grid.
func (g OptionGrid) View() string {
	cells := make([]string, 0, len(g.Options))
	for i, opt := range g.Options {
		cells = append(cells, g.renderCell(i, opt))
	}

	var rows []string
	for i := 0; i < len(cells); i += 2 {
		end := i + 2
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g OptionGrid) renderCell(i, value int) string {
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text).
		Padding(0, 3).
		Margin(0, 1)

	label := fmt.Sprintf("%d)  %d", i+1, value)

	if g.Submitted {
		switch {
		case value == g.CorrectValue:
			cell = cell.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case i == g.ChosenIndex:
			cell = cell.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		default:
			cell = cell.Foreground(theme.TextDim)
		}
	} else if i == g.Selected {
		cell = cell.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
	}

	return cell.Render(label)
}
