package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/ui/theme"
)

// Picker lets the player choose one of a few labelled options, either with
// the arrows and Enter or by pressing the option number.
type Picker struct {
	Prompt   string
	Options  []string
	Selected int
	Chosen   int
}

// NewPicker creates a picker with nothing chosen yet.
func NewPicker(prompt string, options []string) Picker {
	return Picker{Prompt: prompt, Options: options, Chosen: -1}
}

// Done reports whether an option has been chosen.
func (p Picker) Done() bool {
	return p.Chosen >= 0
}

// Value returns the chosen option, or "" when nothing is chosen.
func (p Picker) Value() string {
	if !p.Done() {
		return ""
	}
	return p.Options[p.Chosen]
}

// Update handles keyboard navigation and selection.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if p.Done() {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j", "right", "l":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	case "enter":
		if len(p.Options) > 0 {
			p.Chosen = p.Selected
		}
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(p.Options) {
			p.Selected = int(key[0] - '1')
			p.Chosen = p.Selected
		}
	}
	return p, nil
}

// View renders the prompt and the numbered options.
func (p Picker) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Prompt) + "\n\n"
	for i, opt := range p.Options {
		line := fmt.Sprintf("%d)  %s", i+1, opt)
		switch {
		case i == p.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓ "+line) + "\n"
		case i == p.Selected && !p.Done():
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("  "+line) + "\n"
		}
	}
	return s
}
