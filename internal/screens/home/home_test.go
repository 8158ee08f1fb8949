package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/router"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/screens/quiz"
	"github.com/abhisek/timesdrill/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_LoadEmitsStatus(t *testing.T) {
	eng := practice.NewEngine(practice.Options{Profile: "mia", Documents: store.NewMemoryDocuments()})
	if _, err := eng.RegisterUser(context.Background(), "Mia", profile.GenderFemale); err != nil {
		t.Fatal(err)
	}
	h := New(eng)

	_, cmd := h.Update(h.Init()())
	if cmd == nil {
		t.Fatal("expected a status command")
	}
	if _, ok := cmd().(screen.StatusMsg); !ok {
		t.Fatal("expected StatusMsg")
	}
	if h.name != "Mia" {
		t.Errorf("name = %q, want Mia", h.name)
	}
	if !strings.Contains(h.View(120, 40), "Hi Mia") {
		t.Error("expected the greeting")
	}
}

func TestHomeScreen_HistoryDisabledWithoutLog(t *testing.T) {
	eng := practice.NewEngine(practice.Options{Documents: store.NewMemoryDocuments()})
	h := New(eng)

	if !h.menu.Items[3].Disabled {
		t.Error("history should be disabled without an event log")
	}
	if _, cmd := h.Update(keyPress('h')); cmd != nil {
		t.Error("disabled item must not activate")
	}
}

func TestHomeScreen_PracticeShortcut(t *testing.T) {
	eng := practice.NewEngine(practice.Options{Documents: store.NewMemoryDocuments()})
	h := New(eng)

	_, cmd := h.Update(keyPress('p'))
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("pushed %T, want quiz screen", msg.Screen)
	}
}

func TestHomeScreen_MenuNavigation(t *testing.T) {
	eng := practice.NewEngine(practice.Options{Documents: store.NewMemoryDocuments()})
	h := New(eng)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != 4 {
		t.Errorf("selected = %d, want 4 (history skipped)", h.menu.Selected)
	}
	if h.Title() != "Home" {
		t.Errorf("Title = %q", h.Title())
	}
}
