package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/router"
	"github.com/abhisek/timesdrill/internal/screen"
	"github.com/abhisek/timesdrill/internal/screens/home"
	"github.com/abhisek/timesdrill/internal/screens/welcome"
	"github.com/abhisek/timesdrill/internal/store"
	"github.com/abhisek/timesdrill/internal/ui/layout"
)

func newEngine(t *testing.T, registered bool) *practice.Engine {
	t.Helper()
	eng := practice.NewEngine(practice.Options{Profile: "mia", Documents: store.NewMemoryDocuments()})
	if registered {
		if _, err := eng.RegisterUser(context.Background(), "Mia", profile.GenderFemale); err != nil {
			t.Fatal(err)
		}
	}
	return eng
}

func TestNewAppModel_StartsWithWelcome(t *testing.T) {
	m := newAppModel(Options{Engine: newEngine(t, false)})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("active = %T, want welcome", m.router.Active())
	}
}

func TestNewAppModel_StartsWithHome(t *testing.T) {
	m := newAppModel(Options{Engine: newEngine(t, true)})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T, want home", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("home should load its snapshot on init")
	}
}

func TestAppModel_StatusMsg(t *testing.T) {
	m := newAppModel(Options{Engine: newEngine(t, true)})
	st := layout.Status{DailyScore: 7, Streak: 3, Double: true}

	updated, _ := m.Update(screen.StatusMsg{Status: st})
	if got := updated.(AppModel).status; got != st {
		t.Errorf("status = %+v, want %+v", got, st)
	}
}

func TestAppModel_EscPopsToRoot(t *testing.T) {
	m := newAppModel(Options{Engine: newEngine(t, true)})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root should do nothing")
	}

	// The menu returns the push command; feed it to the router.
	_, cmd = m.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	m.Update(cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Fatal("expected PopToRootMsg")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Engine: newEngine(t, true)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
