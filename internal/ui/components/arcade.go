package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/ui/theme"
)

const (
	maxContentWidth = 60
	minContentWidth = 20
	// cabinet border (2) plus inner padding (4)
	cabinetChrome = 6
)

// stageAccents colors a character card by the stage it unlocks.
var stageAccents = [...]color.Color{theme.ArcadeCyan, theme.Secondary, theme.Accent, theme.ArcadeYellow}

// ContentWidth returns the inner width shared by every section on an arcade
// screen so their boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, minContentWidth), maxContentWidth)
}

// CabinetFrame draws the double-border cabinet and centers content in it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// StageMeter renders one star per character stage, filled up to stage.
func StageMeter(stage, maxStage int) string {
	stage = min(max(stage, 0), maxStage)
	return strings.Repeat("★", stage) + strings.Repeat("☆", maxStage-stage)
}

// StageCard frames the choice that unlocks stage next. The border and the
// header take the stage's accent color.
func StageCard(next, maxStage int, content string, cw int) string {
	accent := stageAccents[min(max(next, 0), len(stageAccents)-1)]
	header := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(fmt.Sprintf("%s  unlock stage %d", StageMeter(next, maxStage), next))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 2).
		Render(header + "\n\n" + content)
}
