// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/router"
	"github.com/abhisek/timesdrill/internal/screen"
	charscreen "github.com/abhisek/timesdrill/internal/screens/character"
	"github.com/abhisek/timesdrill/internal/screens/history"
	"github.com/abhisek/timesdrill/internal/screens/quiz"
	reportscreen "github.com/abhisek/timesdrill/internal/screens/report"
	"github.com/abhisek/timesdrill/internal/ui/components"
)

type homeLoadedMsg struct {
	Snapshot practice.Snapshot
}

type stats struct {
	today int
	best  int
	total int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	engine        *practice.Engine
	menu          components.Menu
	stats         stats
	name          string
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(engine *practice.Engine) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Key: "p", Action: push(func() screen.Screen { return quiz.New(engine) })},
		{Label: "CHARACTER", Key: "c", Action: push(func() screen.Screen { return charscreen.New(engine) })},
		{Label: "REPORT", Key: "r", Action: push(func() screen.Screen { return reportscreen.New(engine) })},
		{Label: "HISTORY", Key: "h", Action: push(func() screen.Screen { return history.New(engine) }), Disabled: !engine.HasHistory()},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		engine: engine,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	eng := h.engine
	return func() tea.Msg {
		return homeLoadedMsg{Snapshot: eng.Snapshot(context.Background())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(homeLoadedMsg); ok {
		snap := msg.Snapshot
		h.stats = stats{today: snap.DailyScore, best: snap.HighScore, total: snap.TotalPoints}
		if snap.User != nil {
			h.name = snap.User.Name
		}
		switch {
		case snap.CanAdvance:
			h.mascotVariant = MascotCelebrating
		case snap.Pending.Active():
			h.mascotVariant = MascotAlert
		default:
			h.mascotVariant = MascotIdle
		}
		return h, screen.StatusCmd(screen.StatusOf(snap))
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100
	tiny := termHeight < 26

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if g := renderGreeting(h.name, cw); g != "" {
		sections = append(sections, g)
	}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if tiny {
		sections = append(sections, renderArcadeMenuCompact(
			h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	} else {
		sections = append(sections, renderArcadeMenu(
			h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
