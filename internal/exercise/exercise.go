package exercise

import (
	"fmt"
	"sort"
	"time"
)

// Factor bounds for the multiplication table.
const (
	MinFactor = 1
	MaxFactor = 10

	// Count is the number of exercises in a profile: every ordered pair.
	Count = (MaxFactor - MinFactor + 1) * (MaxFactor - MinFactor + 1)
)

// SlowThreshold is the response time at which an answer no longer counts
// as fast. An answer taking exactly this long is a miss.
const SlowThreshold = 10 * time.Second

// Group is the mastery group of an exercise: 1 is best, 4 is weakest.
type Group int

const (
	GroupMastered Group = 1
	GroupFamiliar Group = 2
	GroupLearning Group = 3
	GroupWeak     Group = 4
)

// AllGroups returns the groups from best to weakest.
func AllGroups() []Group {
	return []Group{GroupMastered, GroupFamiliar, GroupLearning, GroupWeak}
}

// Valid reports whether g is one of the four mastery groups.
func (g Group) Valid() bool {
	return g >= GroupMastered && g <= GroupWeak
}

// Ref identifies an exercise by its ordered factors.
type Ref struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Key returns the registry key for the referenced exercise.
func (r Ref) Key() string {
	return Key(r.A, r.B)
}

// Valid reports whether both factors are inside the table.
func (r Ref) Valid() bool {
	return inRange(r.A) && inRange(r.B)
}

// Exercise is a single a×b pair with its current mastery group.
type Exercise struct {
	A     int   `json:"a"`
	B     int   `json:"b"`
	Group Group `json:"group"`
}

// Ref returns the identity of the exercise.
func (e Exercise) Ref() Ref {
	return Ref{A: e.A, B: e.B}
}

// Key returns the registry key, e.g. "6×7".
func (e Exercise) Key() string {
	return Key(e.A, e.B)
}

// Product returns the correct answer.
func (e Exercise) Product() int {
	return e.A * e.B
}

func (e Exercise) String() string {
	return fmt.Sprintf("%d × %d", e.A, e.B)
}

// AnswerString renders the full equation, e.g. "6 × 7 = 42".
func (e Exercise) AnswerString() string {
	return fmt.Sprintf("%d × %d = %d", e.A, e.B, e.Product())
}

// Key builds the registry key for a×b. Keys are ordered: 6×7 and 7×6 differ.
func Key(a, b int) string {
	return fmt.Sprintf("%d×%d", a, b)
}

// IsFast reports whether a response time is under the slow threshold.
func IsFast(elapsed time.Duration) bool {
	return elapsed < SlowThreshold
}

// InitialGroup assigns the cold-start group of a×b. It is applied once when a
// profile is created; groups evolve from real answers afterwards.
func InitialGroup(a, b int) Group {
	switch {
	case a == 1 || b == 1:
		return GroupMastered
	case a == 2 || b == 2:
		return GroupFamiliar
	case a > 5 && b > 5:
		return GroupWeak
	default:
		return GroupLearning
	}
}

// Result is an immutable record of one submitted answer.
type Result struct {
	A             int   `json:"a"`
	B             int   `json:"b"`
	UserAnswer    int   `json:"userAnswer"`
	CorrectAnswer int   `json:"correctAnswer"`
	IsCorrect     bool  `json:"isCorrect"`
	ResponseTime  int64 `json:"responseTime"` // milliseconds
	Timestamp     int64 `json:"timestamp"`    // unix milliseconds
}

// Time returns the creation instant of the result.
func (r Result) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Elapsed returns the response time as a duration.
func (r Result) Elapsed() time.Duration {
	return time.Duration(r.ResponseTime) * time.Millisecond
}

func inRange(n int) bool {
	return n >= MinFactor && n <= MaxFactor
}

// sortExercises orders exercises a-major, then by b.
func sortExercises(list []Exercise) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].A == list[j].A {
			return list[i].B < list[j].B
		}
		return list[i].A < list[j].A
	})
}
