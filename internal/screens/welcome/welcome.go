// Package welcome shows the splash animation and registers a new learner.
package welcome

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/router"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/ui/components"
	"github.com/abhisek/timesdrill/internal/ui/layout"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// nameLimit matches the maximum name length accepted by registration.
const nameLimit = 40

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ 7×8 │  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

var genderOptions = []string{"boy", "girl"}

type tickMsg time.Time

type step int

const (
	stepSplash step = iota
	stepName
	stepGender
	stepDone
)

// WelcomeScreen plays the splash animation, then asks for the learner's
// name and gender before handing over to the home screen.
type WelcomeScreen struct {
	engine      *practice.Engine
	homeFactory func() screen.Screen

	elapsed   time.Duration
	tickCount int

	step   step
	name   components.TextInput
	gender components.Picker
	errMsg string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that registers through engine and then
// transitions to the screen produced by homeFactory.
func New(engine *practice.Engine, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		engine:      engine,
		homeFactory: homeFactory,
		name:        components.NewTextInput("your name", false, nameLimit),
		gender:      components.NewPicker("Are you a boy or a girl?", genderOptions),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.step {
	case stepName:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	case stepGender:
		return []layout.KeyHint{
			{Key: "1-2", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Start"}}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.name.Init())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		switch w.step {
		case stepSplash:
			// A key press skips the rest of the animation.
			w.elapsed = totalDur
			w.step = stepName
			return w, nil
		case stepName:
			return w.updateName(msg)
		case stepGender:
			return w.updateGender(msg)
		}
	}
	return w, nil
}

func (w *WelcomeScreen) updateName(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		w.name, cmd = w.name.Update(msg)
		return w, cmd
	}
	if strings.TrimSpace(w.name.Value()) == "" {
		w.errMsg = "Please type your name first."
		return w, nil
	}
	w.errMsg = ""
	w.step = stepGender
	return w, nil
}

func (w *WelcomeScreen) updateGender(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	w.gender, _ = w.gender.Update(msg)
	if !w.gender.Done() {
		return w, nil
	}

	gender := profile.GenderMale
	if w.gender.Value() == "girl" {
		gender = profile.GenderFemale
	}
	name := strings.TrimSpace(w.name.Value())
	if _, err := w.engine.RegisterUser(context.Background(), name, gender); err != nil {
		w.errMsg = registrationError(err)
		w.gender = components.NewPicker(w.gender.Prompt, genderOptions)
		w.step = stepName
		return w, nil
	}
	return w, w.transition()
}

func registrationError(err error) string {
	if errors.Is(err, practice.ErrInvalidUser) {
		return "That name does not work. Try a shorter one."
	}
	return "Could not save: " + err.Error()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.step == stepDone {
		return nil
	}
	w.step = stepDone
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)

	// Phase 1+: mascot
	rendered := mascotStyle.Render(mascotArt)

	// Phase 2+: sparkles around mascot
	if w.elapsed >= phase1End {
		frame := w.tickCount % len(sparkleFrames)
		sparkle := sparkleFrames[frame]

		accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
		secondaryStyle := lipgloss.NewStyle().Foreground(theme.Secondary)

		s1 := accentStyle.Render(sparkle)
		s2 := secondaryStyle.Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Let's learn the times tables!")
		sections = append(sections, tagline)
	}

	sections = append(sections, "")
	switch w.step {
	case stepSplash:
		if w.elapsed >= phase2End {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to start"))
		}
	case stepName:
		sections = append(sections, theme.Body.Render("What is your name?"), w.name.View())
	case stepGender:
		sections = append(sections, theme.Body.Render("Hi "+strings.TrimSpace(w.name.Value())+"!"), w.gender.View())
	}
	if w.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
