package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseLoading:
		body = renderLoading(width)
	case phaseAsking:
		body = s.renderQuestion(width)
	case phaseFeedback:
		body = s.renderFeedback(width)
	case phasePopup:
		body = renderPopup(s.popup, width)
	}
	if s.warn != "" {
		body += "\n\n" + center(width).Foreground(theme.Error).Render(s.warn)
	}
	return body
}

func center(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestion renders the info line, the multiplication and the input.
func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	secs := int(s.elapsed.Seconds())
	clock := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.elapsed >= exercise.SlowThreshold {
		clock = clock.Foreground(theme.Accent)
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %d answered, %d right", s.answered, s.correct))
	infoRight := clock.Render(fmt.Sprintf("T %ds", secs))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n\n")

	groupStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if s.exercise.Group.Valid() {
		groupStyle = theme.GroupColors[s.exercise.Group-1]
	}
	b.WriteString(center(width).Render(groupStyle.Render(s.exercise.String())))
	b.WriteString("\n\n")
	b.WriteString(center(width).Render("= " + s.input.View()))
	return b.String()
}

// renderFeedback shows whether the answer was right and what it earned.
func (s *QuizScreen) renderFeedback(width int) string {
	fb := s.feedback
	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case fb.Correct && fb.Fast:
		b.WriteString(center(width).Render(theme.Correct.Render("Correct!")))
	case fb.Correct:
		b.WriteString(center(width).Render(theme.Correct.Render("Correct, but take less than 10 seconds next time")))
	default:
		b.WriteString(center(width).Render(theme.Incorrect.Render("Not quite")))
		b.WriteString("\n")
		b.WriteString(center(width).Foreground(theme.TextDim).Render(fb.CorrectAnswer))
	}
	b.WriteString("\n\n")

	points := fmt.Sprintf("%+d points", fb.Points)
	if fb.DoublePoints {
		points += " (double!)"
	}
	pointStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	if fb.Points < 0 {
		pointStyle = pointStyle.Foreground(theme.Error)
	}
	b.WriteString(center(width).Render(pointStyle.Render(points)))
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render(
		fmt.Sprintf("Today %d  ·  Streak %d", fb.Score.NewScore, fb.Streak.CurrentStreak)))
	b.WriteString("\n\n")

	b.WriteString(center(width).Foreground(theme.TextDim).Render("Press any key to continue..."))
	return b.String()
}

// PopupText returns the message shown for a notification.
func PopupText(n incentive.Notification) string {
	switch n.Kind {
	case incentive.KindStreak:
		return fmt.Sprintf("%d in a row!\n+%d bonus points", n.Streak, n.Bonus)
	case incentive.KindRecord:
		return fmt.Sprintf("New record!\n%d points today", n.Score)
	case incentive.KindStageUp:
		return fmt.Sprintf("Your character can grow!\nStage %d is unlocked", n.Stage)
	case incentive.KindDoublePoints:
		return "Lucky!\nThe next question is worth double points"
	default:
		return string(n.Kind)
	}
}

func renderPopup(n incentive.Notification, width int) string {
	box := theme.Popup.Render(PopupText(n))
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press any key")
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box) + "\n\n" + center(width).Render(hint)
}

func renderLoading(width int) string {
	return center(width).Foreground(theme.TextDim).Render("\n\n\n  Picking a question...")
}
