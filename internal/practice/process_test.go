package practice

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/profile"
)

var testNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.Local)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 \n", 7, false},
		{"-3", -3, false},
		{"", 0, true},
		{"   ", 0, true},
		{"4x", 0, true},
		{"4.5", 0, true},
		{"forty", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAnswer) {
				t.Errorf("ParseAnswer(%q) err = %v, want ErrInvalidAnswer", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAnswer(%q) = %d, %v; want %d", tt.raw, got, err, tt.want)
		}
	}
}

func TestProcessResult_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		start     exercise.Group
		answer    int
		elapsed   time.Duration
		wantGroup exercise.Group
		wantMiss  bool
	}{
		{"fast correct promotes", 3, 42, 4 * time.Second, 2, false},
		{"fast correct at best stays", 1, 42, time.Second, 1, false},
		{"wrong demotes", 2, 41, time.Second, 3, true},
		{"wrong at weakest stays", 4, 41, time.Second, 4, true},
		{"slow correct demotes", 2, 42, 12 * time.Second, 3, true},
		{"exactly threshold is a miss", 2, 42, exercise.SlowThreshold, 3, true},
		{"just under threshold is fast", 2, 42, exercise.SlowThreshold - time.Millisecond, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := profile.New(testNow)
			ex := exercise.Exercise{A: 6, B: 7, Group: tt.start}
			doc.Exercises[ex.Key()] = ex

			out := ProcessResult(doc, ex, tt.answer, tt.elapsed, testNow)

			if out.Miss() != tt.wantMiss {
				t.Errorf("Miss() = %v, want %v", out.Miss(), tt.wantMiss)
			}
			if out.Exercise.Group != tt.wantGroup {
				t.Errorf("group = %d, want %d", out.Exercise.Group, tt.wantGroup)
			}
			if doc.Exercises[ex.Key()].Group != tt.wantGroup {
				t.Errorf("stored group = %d, want %d", doc.Exercises[ex.Key()].Group, tt.wantGroup)
			}
			if out.PreviousGroup != tt.start {
				t.Errorf("previous group = %d, want %d", out.PreviousGroup, tt.start)
			}

			p := doc.Pending()
			if tt.wantMiss {
				if !p.Active() || p.Due || *p.Exercise != ex.Ref() {
					t.Errorf("pending = %+v, want waiting repeat of 6×7", p)
				}
			} else if p.Active() {
				t.Errorf("unexpected pending repeat %+v", p)
			}
		})
	}
}

func TestProcessResult_AppendsResult(t *testing.T) {
	doc := profile.New(testNow)
	ex, _ := doc.Exercises.Get(3, 4)

	ProcessResult(doc, ex, 11, 2*time.Second, testNow)

	if len(doc.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(doc.Results))
	}
	want := exercise.Result{
		A: 3, B: 4, UserAnswer: 11, CorrectAnswer: 12, IsCorrect: false,
		ResponseTime: 2000, Timestamp: testNow.UnixMilli(),
	}
	if doc.Results[0] != want {
		t.Errorf("result = %+v, want %+v", doc.Results[0], want)
	}
}

func TestProcessResult_SecondMissOverwritesPending(t *testing.T) {
	doc := profile.New(testNow)
	a, _ := doc.Exercises.Get(3, 4)
	b, _ := doc.Exercises.Get(8, 9)

	ProcessResult(doc, a, 1, time.Second, testNow)
	ProcessResult(doc, b, 1, time.Second, testNow)

	if got := *doc.Pending().Exercise; got != b.Ref() {
		t.Errorf("pending = %v, want %v", got, b.Ref())
	}
}

func TestProcessResult_UnknownExercise(t *testing.T) {
	doc := profile.New(testNow)
	delete(doc.Exercises, exercise.Key(5, 5))

	out := ProcessResult(doc, exercise.Exercise{A: 5, B: 5, Group: 3}, 1, time.Second, testNow)

	if out.Known {
		t.Error("expected unknown exercise")
	}
	if len(doc.Results) != 1 {
		t.Errorf("results = %d, want 1", len(doc.Results))
	}
	if doc.Pending().Active() {
		t.Error("unknown exercise must not be scheduled")
	}
	if _, ok := doc.Exercises.Get(5, 5); ok {
		t.Error("unknown exercise was created")
	}
}

func TestProcessResult_GroupBounds(t *testing.T) {
	doc := profile.New(testNow)
	ex, _ := doc.Exercises.Get(7, 8)

	for i := 0; i < 10; i++ {
		out := ProcessResult(doc, ex, 0, time.Second, testNow)
		if !out.Exercise.Group.Valid() {
			t.Fatalf("group %d out of range", out.Exercise.Group)
		}
	}
	if g := doc.Exercises[ex.Key()].Group; g != exercise.GroupWeak {
		t.Errorf("group = %d after repeated misses, want 4", g)
	}

	for i := 0; i < 10; i++ {
		ProcessResult(doc, ex, ex.Product(), time.Second, testNow)
	}
	if g := doc.Exercises[ex.Key()].Group; g != exercise.GroupMastered {
		t.Errorf("group = %d after repeated hits, want 1", g)
	}
}
