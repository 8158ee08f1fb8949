package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/router"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/store"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *practice.Engine, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	eng := practice.NewEngine(practice.Options{Profile: "mia", Documents: store.NewMemoryDocuments()})
	return New(eng, factory), eng, &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestPhaseTransitions(t *testing.T) {
	w, _, _ := newTestWelcome()

	if containsBanner(w.View(80, 30)) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 10)
	if !containsBanner(w.View(80, 30)) {
		t.Error("banner should be visible after phase 2")
	}

	sendTicks(w, 45)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if w.step != stepSplash {
		t.Error("ticks alone must not leave the splash")
	}
}

func TestKeypressSkipsToName(t *testing.T) {
	w, _, _ := newTestWelcome()
	sendTicks(w, 3)

	w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	if w.step != stepName {
		t.Fatalf("step = %d, want name", w.step)
	}
	if w.elapsed != totalDur {
		t.Error("key press should finish the animation")
	}
	if !strings.Contains(w.View(80, 30), "What is your name?") {
		t.Error("expected the name prompt")
	}
}

func TestEmptyNameRejected(t *testing.T) {
	w, _, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})

	w.name.SetValue("   ")
	w.Update(enter())
	if w.step != stepName {
		t.Error("blank name should stay on the name step")
	}
	if !strings.Contains(w.View(80, 30), "type your name") {
		t.Error("expected the empty name hint")
	}
}

func TestRegistration(t *testing.T) {
	w, eng, callCount := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})

	w.name.SetValue(" Mia ")
	w.Update(enter())
	if w.step != stepGender {
		t.Fatalf("step = %d, want gender", w.step)
	}
	if !strings.Contains(w.View(80, 30), "Hi Mia!") {
		t.Error("expected the greeting")
	}

	_, cmd := w.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	u := eng.Snapshot(context.Background()).User
	if u == nil || u.Name != "Mia" || u.Gender != profile.GenderFemale {
		t.Errorf("user = %+v, want Mia/female", u)
	}

	if _, cmd := w.Update(enter()); cmd != nil {
		t.Error("no further commands after the transition")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func containsBanner(s string) bool {
	return strings.Contains(s, "times tables")
}
