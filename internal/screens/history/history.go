package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/store"
	"github.com/abhisek/timesdrill/internal/ui/layout"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

// pageSize is the number of awards loaded.
const pageSize = 100

type historyLoadedMsg struct {
	Events []store.IncentiveEventRecord
	Counts map[string]int
	Err    error
}

// HistoryScreen lists the awards earned so far, newest first.
type HistoryScreen struct {
	engine   *practice.Engine
	events   []store.IncentiveEventRecord
	counts   map[string]int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(engine *practice.Engine) *HistoryScreen {
	return &HistoryScreen{
		engine:   engine,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	eng := s.engine
	return func() tea.Msg {
		ctx := context.Background()

		events, err := eng.History(ctx, pageSize)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		counts, err := eng.AwardCounts(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events, Counts: map[string]int{}}
		}
		return historyLoadedMsg{Events: events, Counts: counts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.counts = msg.Counts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No awards yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderCounts()))
	b.WriteString("\n\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s %s",
			prefix, ev.Timestamp.Format("Jan 02 15:04"), kindIcon(ev.Kind), describe(ev))

		style := lipgloss.NewStyle().Foreground(kindColor(ev.Kind))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := ev.Detail
			if detail == "" {
				detail = "no details"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render("    "+detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderCounts() string {
	parts := []string{
		fmt.Sprintf("%s %d streaks", kindIcon(string(incentive.KindStreak)), s.counts[string(incentive.KindStreak)]),
		fmt.Sprintf("%s %d records", kindIcon(string(incentive.KindRecord)), s.counts[string(incentive.KindRecord)]),
		fmt.Sprintf("%s %d stages", kindIcon(string(incentive.KindStageUp)), s.counts[string(incentive.KindStageUp)]),
		fmt.Sprintf("%s %d characters", kindIcon(practice.KindCharacterComplete), s.counts[practice.KindCharacterComplete]),
	}
	return theme.Subtitle.Render(strings.Join(parts, "   "))
}

// describe renders one award as a sentence.
func describe(ev store.IncentiveEventRecord) string {
	switch ev.Kind {
	case string(incentive.KindStreak):
		return fmt.Sprintf("%d correct in a row", ev.Value)
	case string(incentive.KindRecord):
		return fmt.Sprintf("New daily record: %d points", ev.Value)
	case string(incentive.KindStageUp):
		return fmt.Sprintf("Character stage %d unlocked", ev.Value)
	case practice.KindCharacterComplete:
		return fmt.Sprintf("Character #%d finished", ev.Value)
	case string(incentive.KindDoublePoints):
		return "Double points armed"
	default:
		return fmt.Sprintf("%s %d", ev.Kind, ev.Value)
	}
}

func kindIcon(kind string) string {
	switch kind {
	case string(incentive.KindStreak):
		return "⚡"
	case string(incentive.KindRecord):
		return "🏆"
	case string(incentive.KindStageUp):
		return "⬆"
	case practice.KindCharacterComplete:
		return "★"
	case string(incentive.KindDoublePoints):
		return "x2"
	default:
		return "•"
	}
}

func kindColor(kind string) color.Color {
	switch kind {
	case string(incentive.KindStreak):
		return theme.Secondary
	case string(incentive.KindRecord):
		return theme.Accent
	case string(incentive.KindStageUp):
		return theme.Primary
	case practice.KindCharacterComplete:
		return theme.ArcadeYellow
	default:
		return theme.Text
	}
}
