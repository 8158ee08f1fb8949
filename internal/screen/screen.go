package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusMsg updates the score line in the header.
type StatusMsg struct {
	Status layout.Status
}

// StatusCmd returns a command that emits st as a StatusMsg.
func StatusCmd(st layout.Status) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Status: st} }
}

// StatusOf extracts the header status from an engine snapshot.
func StatusOf(snap practice.Snapshot) layout.Status {
	return layout.Status{
		DailyScore: snap.DailyScore,
		Streak:     snap.Streak,
		Double:     snap.DoublePointsArmed,
	}
}
