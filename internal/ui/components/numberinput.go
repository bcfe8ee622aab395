package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/playmath/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for whole-number entry. Only
// digits are accepted, plus a leading minus when AllowNegative is set.
type NumberInput struct {
	Model         textinput.Model
	Label         string
	AllowNegative bool
	submitted     bool
	valid         bool
}

// NewNumberInput creates a labelled numeric input.
func NewNumberInput(label, placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}

	return NumberInput{
		Model: ti,
		Label: label,
	}
}

// Init returns the initial command.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update handles messages, filtering out non-numeric keystrokes.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 {
			c := key[0]
			switch {
			case c >= '0' && c <= '9':
			case c == '-' && n.AllowNegative && n.Model.Position() == 0:
			default:
				return n, nil
			}
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input with its label and, after submission, a
// check or cross mark.
func (n NumberInput) View() string {
	view := n.Model.View()
	if n.Label != "" {
		view = lipgloss.NewStyle().Foreground(theme.TextDim).Render(n.Label+": ") + view
	}
	if n.submitted {
		if n.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the raw input text.
func (n NumberInput) Value() string {
	return n.Model.Value()
}

// Int returns the input parsed as an integer.
func (n NumberInput) Int() (int, error) {
	return strconv.Atoi(n.Model.Value())
}

// SetValue replaces the input text.
func (n *NumberInput) SetValue(s string) {
	n.Model.SetValue(s)
}

// Focus gives the input keyboard focus.
func (n *NumberInput) Focus() tea.Cmd {
	return n.Model.Focus()
}

// Blur removes keyboard focus.
func (n *NumberInput) Blur() {
	n.Model.Blur()
}

// Submit marks the input as graded.
func (n *NumberInput) Submit(valid bool) {
	n.submitted = true
	n.valid = valid
}

// ClearGrade removes a previous grading mark, keeping the text.
func (n *NumberInput) ClearGrade() {
	n.submitted = false
	n.valid = false
}
