package practice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/profile"
)

// ErrInvalidAnswer is returned for input that is not a whole number.
var ErrInvalidAnswer = errors.New("answer is not a number")

// ParseAnswer converts the learner's raw input into a number.
func ParseAnswer(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidAnswer
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
	}
	return n, nil
}

// Outcome is the result of processing one answer.
type Outcome struct {
	Exercise      exercise.Exercise // with its updated group
	PreviousGroup exercise.Group
	Correct       bool
	Fast          bool
	// Known is false when the exercise is not in the registry. The result
	// is still recorded but no group changes.
	Known  bool
	Result exercise.Result
}

// Miss reports whether the answer was wrong or too slow.
func (o Outcome) Miss() bool {
	return !o.Correct || !o.Fast
}

// ProcessResult grades an answer and applies it to doc: a miss moves the
// exercise one group weaker and schedules a repeat, a fast correct answer
// moves it one group stronger. The result is always appended.
func ProcessResult(doc *profile.Document, ex exercise.Exercise, answer int, elapsed time.Duration, now time.Time) Outcome {
	if elapsed < 0 {
		elapsed = 0
	}
	correct := answer == ex.Product()
	out := Outcome{
		Exercise: ex,
		Correct:  correct,
		Fast:     exercise.IsFast(elapsed),
	}

	if cur, ok := doc.Exercises.Get(ex.A, ex.B); ok {
		out.Known = true
		out.PreviousGroup = cur.Group
		if out.Miss() {
			out.Exercise.Group, _ = doc.Exercises.RecordMiss(ex.A, ex.B)
			ref := ex.Ref()
			doc.SetPending(exercise.PendingRepeat{Exercise: &ref})
		} else {
			out.Exercise.Group, _ = doc.Exercises.RecordHit(ex.A, ex.B)
		}
	}

	out.Result = exercise.Result{
		A:             ex.A,
		B:             ex.B,
		UserAnswer:    answer,
		CorrectAnswer: ex.Product(),
		IsCorrect:     correct,
		ResponseTime:  elapsed.Milliseconds(),
		Timestamp:     now.UnixMilli(),
	}
	doc.Results = append(doc.Results, out.Result)
	return out
}
