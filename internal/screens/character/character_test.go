package character

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/store"
)

var testNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seeded(t *testing.T, points int, cur character.Character) store.DocumentRepo {
	t.Helper()
	docs := store.NewMemoryDocuments()
	doc := profile.New(testNow)
	doc.Incentive.FirstUsageDate = "2026-09-01"
	doc.Incentive.TotalPoints = points
	doc.Character.Current = cur
	data, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if err := docs.Save(context.Background(), "mia", data); err != nil {
		t.Fatal(err)
	}
	return docs
}

func testScreen(t *testing.T, docs store.DocumentRepo) (*CharacterScreen, *practice.Engine) {
	t.Helper()
	eng := practice.NewEngine(practice.Options{
		Profile:   "mia",
		Documents: docs,
		Now:       func() time.Time { return testNow },
	})
	s := New(eng)
	load(t, s)
	return s, eng
}

func load(t *testing.T, s *CharacterScreen) {
	t.Helper()
	msg := s.Init()()
	if _, ok := msg.(loadedMsg); !ok {
		t.Fatalf("expected loadedMsg, got %T", msg)
	}
	s.Update(msg)
}

func TestCharacterScreen_NotEnoughPoints(t *testing.T) {
	s, _ := testScreen(t, seeded(t, 12, character.Character{}))

	if s.canPick() {
		t.Error("picker should be hidden below the threshold")
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "12/30") {
		t.Error("expected progress toward the first stage")
	}
	if !strings.Contains(view, "egg") {
		t.Error("expected the egg description")
	}

	s.Update(keyPress('1'))
	if s.snap.Character.Current.Stage != 0 {
		t.Error("key press must not advance without points")
	}
}

func TestCharacterScreen_PickColor(t *testing.T) {
	s, eng := testScreen(t, seeded(t, 30, character.Character{}))

	if !s.canPick() {
		t.Fatal("expected the color picker")
	}
	if view := s.View(80, 30); !strings.Contains(view, "Pick a color") || !strings.Contains(view, "unlock stage 1") {
		t.Errorf("expected the color prompt in the stage card:\n%s", view)
	}

	_, cmd := s.Update(keyPress('2'))
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	s.Update(cmd())

	cur := eng.Snapshot(context.Background()).Character.Current
	if cur.Stage != 1 || cur.Color != character.ColorBrown {
		t.Errorf("character = %+v, want stage 1 brown", cur)
	}
	if s.canPick() {
		t.Error("30 points only pay for one stage")
	}
	if !strings.Contains(s.View(80, 30), "stage 1") {
		t.Error("expected the stage notice")
	}
}

func TestCharacterScreen_Complete(t *testing.T) {
	grown := character.Character{
		Stage:     3,
		Color:     character.ColorWhite,
		Skin:      character.SkinSummer,
		Animation: character.AnimationSpin,
	}
	s, eng := testScreen(t, seeded(t, 90, grown))

	if !s.canComplete() {
		t.Fatal("expected a grown character")
	}
	if !strings.Contains(s.View(80, 30), "sunglasses") {
		t.Error("expected the skin in the description")
	}

	s.Update(keyPress('x'))
	if len(eng.Snapshot(context.Background()).Character.Completed) != 0 {
		t.Fatal("only C completes the character")
	}

	_, cmd := s.Update(keyPress('c'))
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	s.Update(cmd())

	snap := eng.Snapshot(context.Background())
	if len(snap.Character.Completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(snap.Character.Completed))
	}
	if snap.Character.Current.Stage != 0 {
		t.Error("expected a fresh egg")
	}
	if !strings.Contains(s.View(80, 30), "1 finished so far") {
		t.Error("expected the completed count")
	}
}

func TestCharacterScreen_KeyHints(t *testing.T) {
	s, _ := testScreen(t, seeded(t, 30, character.Character{}))
	hints := s.KeyHints()
	if len(hints) == 0 || hints[0].Key != "1-3" {
		t.Errorf("hints = %+v, want choose hint first", hints)
	}
}
