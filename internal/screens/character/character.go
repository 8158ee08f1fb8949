// Package character is the screen where the player grows a character with
// the points earned in practice.
package character

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/ui/components"
	"github.com/abhisek/timesdrill/internal/ui/layout"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

type loadedMsg struct {
	Snapshot practice.Snapshot
}

// CharacterScreen shows the current character and lets the player pick
// the next stage option once enough points are earned.
type CharacterScreen struct {
	engine *practice.Engine
	snap   *practice.Snapshot
	picker components.Picker
	notice string
	errMsg string
}

var _ screen.Screen = (*CharacterScreen)(nil)
var _ screen.KeyHintProvider = (*CharacterScreen)(nil)

// New creates a CharacterScreen.
func New(engine *practice.Engine) *CharacterScreen {
	return &CharacterScreen{engine: engine}
}

func (s *CharacterScreen) Init() tea.Cmd {
	eng := s.engine
	return func() tea.Msg {
		return loadedMsg{Snapshot: eng.Snapshot(context.Background())}
	}
}

func (s *CharacterScreen) Title() string {
	return "Character"
}

func (s *CharacterScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.canPick():
		return []layout.KeyHint{
			{Key: "1-3", Description: "Choose"},
			{Key: "Esc", Description: "Back"},
		}
	case s.canComplete():
		return []layout.KeyHint{
			{Key: "C", Description: "Finish character"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *CharacterScreen) canPick() bool {
	return s.snap != nil && s.snap.CanAdvance
}

func (s *CharacterScreen) canComplete() bool {
	return s.snap != nil && s.snap.Character.Current.Stage >= character.MaxStage
}

func (s *CharacterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.snap = &msg.Snapshot
		stage := msg.Snapshot.Character.Current.Stage
		if msg.Snapshot.CanAdvance {
			s.picker = components.NewPicker(
				"Pick a "+character.OptionLabel(stage),
				character.Options(stage),
			)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *CharacterScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	switch {
	case s.canPick():
		s.picker, _ = s.picker.Update(msg)
		if !s.picker.Done() {
			return s, nil
		}
		stage := s.snap.Character.Current.Stage + 1
		if _, err := s.engine.SelectCharacterOption(ctx, stage, s.picker.Value()); err != nil {
			s.errMsg = err.Error()
			s.picker.Chosen = -1
			return s, nil
		}
		s.errMsg = ""
		s.notice = fmt.Sprintf("Your character reached stage %d!", stage)
		return s, s.Init()

	case s.canComplete():
		if k := msg.String(); k != "c" && k != "C" {
			return s, nil
		}
		if _, err := s.engine.CompleteCharacter(ctx); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.notice = "Character finished! A new egg is waiting."
		return s, s.Init()
	}
	return s, nil
}

func (s *CharacterScreen) View(width, height int) string {
	if s.snap == nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render("\n\n\n  Loading...")
	}
	cw := components.ContentWidth(width)
	cur := s.snap.Character.Current

	var sections []string
	sections = append(sections, renderCharacter(cur))
	sections = append(sections, theme.Body.Render(describe(cur)))
	sections = append(sections, s.renderProgress(cw))

	switch {
	case s.canPick():
		sections = append(sections, components.StageCard(cur.Stage+1, character.MaxStage, s.picker.View(), cw))
	case s.canComplete():
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render("Fully grown! Press C to finish it and start a new one."))
	}

	if s.notice != "" {
		sections = append(sections, theme.Correct.Render(s.notice))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	if n := len(s.snap.Character.Completed); n > 0 {
		sections = append(sections, theme.Hint.Render(fmt.Sprintf("%d finished so far", n)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderProgress shows the lifetime points toward the next stage.
func (s *CharacterScreen) renderProgress(cw int) string {
	cur := s.snap.Character.Current
	if cur.Stage >= character.MaxStage {
		return theme.Subtitle.Render(fmt.Sprintf("%d points earned", s.snap.TotalPoints))
	}
	label := fmt.Sprintf("Stage %d  %d/%d", cur.Stage+1, s.snap.TotalPoints, s.snap.Threshold)
	bar := components.NewProgressBar(label, components.Ratio(s.snap.TotalPoints, s.snap.Threshold), false, cw)
	return bar.View()
}
