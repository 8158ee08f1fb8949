package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/store"
)

var testNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryScreen_Empty(t *testing.T) {
	st := openStore(t)
	eng := practice.NewEngine(practice.Options{Profile: "mia", Documents: st.DocumentRepo(), Events: st.EventRepo()})
	s := New(eng)

	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No awards yet") {
		t.Error("expected empty view")
	}
}

func TestHistoryScreen_ListsAwards(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	events := st.EventRepo()
	for i, ev := range []store.IncentiveEventData{
		{Kind: string(incentive.KindStreak), Value: 10, Detail: "bonus 5"},
		{Kind: string(incentive.KindStageUp), Value: 1, Detail: "total 30"},
		{Kind: practice.KindCharacterComplete, Value: 1, Detail: "white/winter/jump"},
	} {
		ev.Profile = "mia"
		ev.Timestamp = testNow.Add(time.Duration(i) * time.Minute)
		if err := events.AppendIncentiveEvent(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := events.AppendIncentiveEvent(ctx, store.IncentiveEventData{
		Profile: "leo", Kind: string(incentive.KindRecord), Value: 40, Timestamp: testNow,
	}); err != nil {
		t.Fatal(err)
	}

	eng := practice.NewEngine(practice.Options{Profile: "mia", Documents: st.DocumentRepo(), Events: events})
	s := New(eng)
	load(t, s)

	if len(s.events) != 3 {
		t.Fatalf("events = %d, want 3", len(s.events))
	}
	if s.events[0].Kind != practice.KindCharacterComplete {
		t.Errorf("first event = %s, want newest first", s.events[0].Kind)
	}

	view := s.View(100, 30)
	for _, want := range []string{"Character #1 finished", "10 correct in a row", "1 streaks", "0 records"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "white/winter/jump") {
		t.Error("details should be collapsed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "white/winter/jump") {
		t.Error("expected expanded details")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
}
