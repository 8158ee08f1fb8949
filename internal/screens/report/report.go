// Package report is the parent-facing progress screen.
package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/practice"
	rpt "github.com/abhisek/timesdrill/internal/report"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/ui/components"
	"github.com/abhisek/timesdrill/internal/ui/layout"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report rpt.Report
}

// ReportScreen shows answer totals per period and the mastery groups.
type ReportScreen struct {
	engine  *practice.Engine
	report  *rpt.Report
	showAll bool
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen.
func New(engine *practice.Engine) *ReportScreen {
	return &ReportScreen{engine: engine}
}

func (s *ReportScreen) Init() tea.Cmd {
	eng := s.engine
	return func() tea.Msg {
		return reportLoadedMsg{Report: eng.Report(context.Background())}
	}
}

func (s *ReportScreen) Title() string {
	return "Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	label := "Show exercises"
	if s.showAll {
		label = "Hide exercises"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: label},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.report = &msg.Report
	case tea.KeyMsg:
		if msg.String() == "tab" {
			s.showAll = !s.showAll
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	if s.report == nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render("\n\n  Loading report...")
	}
	cw := components.ContentWidth(width)
	r := s.report

	var sections []string
	if r.User != nil {
		sections = append(sections, theme.Title.Render("Progress of "+r.User.Name))
	}
	sections = append(sections, renderWindows(r.Windows))
	sections = append(sections, s.renderGroups(cw))
	sections = append(sections, theme.Hint.Render(fmt.Sprintf(
		"High score %d  •  %d points in total  •  %d characters finished",
		r.Incentive.HighScore, r.Incentive.TotalPoints, len(r.Character.Completed))))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+content)
}

func renderWindows(stats []rpt.Stats) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	cell := lipgloss.NewStyle().Foreground(theme.Text)

	lines := []string{head.Render(fmt.Sprintf("%-12s %8s %8s %8s %9s", "", "Answers", "Correct", "Wrong", "Time"))}
	for _, st := range stats {
		lines = append(lines, cell.Render(fmt.Sprintf("%-12s %8d %8d %8d %9s",
			st.Window.Label(), st.Total, st.Correct, st.Wrong, rpt.FormatDuration(st.TotalTime))))
	}
	return strings.Join(lines, "\n")
}

func (s *ReportScreen) renderGroups(cw int) string {
	var lines []string
	for _, g := range exercise.AllGroups() {
		list := s.report.Groups[g]
		label := fmt.Sprintf("Group %d  %3d", int(g), len(list))
		bar := components.NewProgressBar(label, components.Ratio(len(list), exercise.Count), false, cw)
		lines = append(lines, theme.GroupColors[g-1].Render(bar.View()))
		if s.showAll && len(list) > 0 {
			names := make([]string, len(list))
			for i, e := range list {
				names[i] = e.Key()
			}
			wrapped := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(strings.Join(names, "  "))
			lines = append(lines, wrapped)
		}
	}
	return strings.Join(lines, "\n")
}
