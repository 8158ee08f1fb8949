package profile

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
)

// FormatVersion is the document format written by this binary.
const FormatVersion = "v1.0.0"

// Gender of a registered learner.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User is the registered learner of a profile.
type User struct {
	Name   string `json:"name" validate:"required,max=40"`
	Gender Gender `json:"gender" validate:"required,oneof=male female"`
}

// Document is everything persisted for one profile. It is loaded whole,
// mutated in memory and saved whole.
type Document struct {
	Version               string            `json:"version"`
	User                  *User             `json:"user"`
	Exercises             exercise.Registry `json:"exercises"`
	Results               []exercise.Result `json:"results"`
	LastWrongExercise     *exercise.Ref     `json:"lastWrongExercise"`
	ShowWrongExerciseNext bool              `json:"showWrongExerciseNext"`
	Incentive             incentive.State   `json:"incentive"`
	Character             character.State   `json:"character"`
}

// New returns the document of a fresh profile created at now.
func New(now time.Time) *Document {
	return &Document{
		Version:   FormatVersion,
		Exercises: exercise.NewRegistry(),
		Results:   []exercise.Result{},
		Incentive: incentive.NewState(incentive.DateString(now)),
		Character: character.State{Completed: []character.Completed{}},
	}
}

// Pending returns the scheduled repeat, if any.
func (d *Document) Pending() exercise.PendingRepeat {
	if d.LastWrongExercise == nil {
		return exercise.PendingRepeat{}
	}
	ref := *d.LastWrongExercise
	return exercise.PendingRepeat{Exercise: &ref, Due: d.ShowWrongExerciseNext}
}

// SetPending stores p as the scheduled repeat.
func (d *Document) SetPending(p exercise.PendingRepeat) {
	if p.Exercise == nil {
		d.LastWrongExercise = nil
		d.ShowWrongExerciseNext = false
		return
	}
	ref := *p.Exercise
	d.LastWrongExercise = &ref
	d.ShowWrongExerciseNext = p.Due
}

// Marshal encodes the document, stamping the current format version.
func (d *Document) Marshal() ([]byte, error) {
	out := *d
	out.Version = FormatVersion
	if out.Results == nil {
		out.Results = []exercise.Result{}
	}
	if out.Character.Completed == nil {
		out.Character.Completed = []character.Completed{}
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	out := *d
	if d.User != nil {
		u := *d.User
		out.User = &u
	}
	if d.LastWrongExercise != nil {
		ref := *d.LastWrongExercise
		out.LastWrongExercise = &ref
	}
	out.Exercises = d.Exercises.Clone()
	out.Results = slices.Clone(d.Results)
	out.Character = d.Character.Clone()
	return &out
}
