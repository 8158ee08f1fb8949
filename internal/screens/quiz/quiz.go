// Package quiz is the practice screen: one multiplication at a time,
// followed by feedback and any award popups.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/ui/components"
	"github.com/abhisek/timesdrill/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseFeedback
	phasePopup
)

// QuizScreen implements screen.Screen for a practice run.
type QuizScreen struct {
	engine *practice.Engine
	now    func() time.Time

	phase    phase
	exercise exercise.Exercise
	shownAt  time.Time
	elapsed  time.Duration
	input    components.TextInput

	feedback *practice.Feedback
	popup    incentive.Notification

	answered int
	correct  int
	warn     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen backed by engine.
func New(engine *practice.Engine) *QuizScreen {
	return &QuizScreen{
		engine: engine,
		now:    time.Now,
		input:  newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("?", true, 3)
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.nextExercise(), tickCmd())
}

func (s *QuizScreen) Title() string {
	return "Practice"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFeedback, phasePopup:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Esc", Description: "Stop"},
		}
	default:
		return []layout.KeyHint{
			{Key: "0-9", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Stop"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exerciseReadyMsg:
		return s.handleExercise(msg)

	case timerTickMsg:
		if s.phase == phaseAsking {
			s.elapsed = s.now().Sub(s.shownAt)
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAsking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleExercise(msg exerciseReadyMsg) (screen.Screen, tea.Cmd) {
	s.exercise = msg.Exercise
	s.shownAt = s.now()
	s.elapsed = 0
	s.feedback = nil
	s.input = newAnswerInput()
	s.phase = phaseAsking
	s.warn = ""
	if msg.Err != nil {
		s.warn = "Progress could not be saved: " + msg.Err.Error()
	}
	return s, s.input.Init()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAsking:
		if msg.String() == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback, phasePopup:
		return s.advance()
	}
	return s, nil
}

// submit grades the typed answer.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	raw := s.input.Value()
	if raw == "" {
		return s, nil
	}
	elapsed := s.now().Sub(s.shownAt)

	fb, err := s.engine.SubmitAnswer(context.Background(), s.exercise, raw, elapsed)
	if errors.Is(err, practice.ErrInvalidAnswer) {
		s.warn = "Type a number."
		s.input.SetValue("")
		return s, nil
	}
	if fb == nil {
		s.warn = err.Error()
		return s, nil
	}
	s.warn = ""
	if err != nil {
		s.warn = "Progress could not be saved: " + err.Error()
	}

	s.feedback = fb
	s.elapsed = elapsed
	s.answered++
	if fb.Correct {
		s.correct++
	}
	s.input.Submit(fb.Correct)
	s.phase = phaseFeedback

	return s, screen.StatusCmd(layout.Status{
		DailyScore: fb.Score.NewScore,
		Streak:     fb.Streak.CurrentStreak,
		Double:     fb.DoublePointsArmed,
	})
}

// advance moves past the feedback, showing queued popups one at a time
// before the next exercise.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.phase == phasePopup {
		s.feedback.Popups.Ack()
	}
	if n, ok := s.feedback.Popups.Peek(); ok {
		s.popup = n
		s.phase = phasePopup
		return s, nil
	}
	s.phase = phaseLoading
	return s, s.nextExercise()
}

func (s *QuizScreen) nextExercise() tea.Cmd {
	eng := s.engine
	return func() tea.Msg {
		ex, err := eng.NextExercise(context.Background())
		return exerciseReadyMsg{Exercise: ex, Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
