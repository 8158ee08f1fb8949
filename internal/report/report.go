// Package report builds the read-only progress view for parents.
package report

import (
	"fmt"
	"time"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/profile"
)

// Window is a reporting period ending now.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// AllWindows returns the windows in display order.
func AllWindows() []Window {
	return []Window{WindowToday, WindowWeek, WindowMonth, WindowAll}
}

// Label returns a human-readable name for the window.
func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "Today"
	case WindowWeek:
		return "Last 7 days"
	case WindowMonth:
		return "Last month"
	case WindowAll:
		return "All time"
	default:
		return string(w)
	}
}

// Start returns the first instant included in the window. Windows begin at
// local midnight; WindowAll returns the zero time.
func (w Window) Start(now time.Time) time.Time {
	now = now.Local()
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch w {
	case WindowToday:
		return midnight(now)
	case WindowWeek:
		return midnight(now.AddDate(0, 0, -7))
	case WindowMonth:
		return midnight(now.AddDate(0, -1, 0))
	default:
		return time.Time{}
	}
}

// Stats aggregates answers in one window.
type Stats struct {
	Window    Window
	Total     int
	Correct   int
	Wrong     int
	TotalTime time.Duration
}

// Report is the full progress view of a profile.
type Report struct {
	GeneratedAt time.Time
	User        *profile.User
	Windows     []Stats
	Groups      map[exercise.Group][]exercise.Exercise
	Incentive   incentive.State
	Character   character.State
	Results     []exercise.Result
}

// Build projects doc into a Report as of now.
func Build(doc *profile.Document, now time.Time) Report {
	r := Report{
		GeneratedAt: now,
		User:        doc.User,
		Groups:      doc.Exercises.ByGroup(),
		Incentive:   doc.Incentive,
		Character:   doc.Character,
		Results:     doc.Results,
	}
	for _, w := range AllWindows() {
		r.Windows = append(r.Windows, Summarize(doc.Results, w, now))
	}
	return r
}

// Summarize aggregates the results whose timestamp falls in w.
func Summarize(results []exercise.Result, w Window, now time.Time) Stats {
	s := Stats{Window: w}
	start := w.Start(now).UnixMilli()
	for _, res := range results {
		if w != WindowAll && res.Timestamp < start {
			continue
		}
		s.Total++
		if res.IsCorrect {
			s.Correct++
		} else {
			s.Wrong++
		}
		s.TotalTime += res.Elapsed()
	}
	return s
}

// FormatDuration renders practice time as "1h 5m", "3m 12s" or "45s".
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
