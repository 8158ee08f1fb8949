package quiz

import (
	"time"

	"github.com/abhisek/timesdrill/internal/exercise"
)

// exerciseReadyMsg carries the next exercise. Err is a save failure; the
// exercise is still usable.
type exerciseReadyMsg struct {
	Exercise exercise.Exercise
	Err      error
}

// timerTickMsg is sent every second to refresh the answer clock.
type timerTickMsg time.Time
