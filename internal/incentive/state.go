package incentive

import "time"

// Points awarded per answer.
const (
	PointsFastCorrect = 3
	PointsSlowCorrect = 2
	PointsWrong       = -1
)

// DoublePointsChance is the probability that the next question is armed
// with double points. It is drawn once per answered question.
const DoublePointsChance = 0.10

// StreakMilestones are the streak lengths that grant a bonus.
var StreakMilestones = []int{5, 10, 20}

// dateLayout is the calendar-day format used for rollover checks.
const dateLayout = "2006-01-02"

// DateString returns the local calendar day of t, e.g. "2026-10-19".
func DateString(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// State is the per-profile score and streak bookkeeping.
type State struct {
	DailyScore               int    `json:"dailyScore"`
	HighScore                int    `json:"highScore"`
	LastScoreDate            string `json:"lastScoreDate"`
	LastStreakDate           string `json:"lastStreakDate"`
	HasShownRecordPopupToday bool   `json:"hasShownRecordPopupToday"`
	CurrentStreak            int    `json:"currentStreak"`
	FirstUsageDate           string `json:"firstUsageDate"`
	NextQuestionDoublePoints bool   `json:"nextQuestionDoublePoints"`
	TotalPoints              int    `json:"totalPoints"`
}

// NewState returns a zeroed state whose first usage day is today.
func NewState(today string) State {
	return State{
		LastScoreDate:  today,
		LastStreakDate: today,
		FirstUsageDate: today,
	}
}

// Rollover resets the per-day fields when the last score date is not today.
// High score, total points and first usage date are kept. It reports
// whether a reset happened.
func (s *State) Rollover(today string) bool {
	if s.FirstUsageDate == "" {
		s.FirstUsageDate = today
	}
	if s.LastScoreDate == today {
		return false
	}
	s.DailyScore = 0
	s.CurrentStreak = 0
	s.HasShownRecordPopupToday = false
	s.LastScoreDate = today
	s.LastStreakDate = today
	return true
}

// Points returns the score change for one answer before any multiplier.
func Points(correct, fast bool) int {
	switch {
	case correct && fast:
		return PointsFastCorrect
	case correct:
		return PointsSlowCorrect
	default:
		return PointsWrong
	}
}

// StreakBonus returns the flat bonus for reaching a streak milestone.
func StreakBonus(milestone int) int {
	for _, m := range StreakMilestones {
		if m == milestone {
			return m
		}
	}
	return 0
}

// SetDoublePointsForNextQuestion arms or disarms the one-shot multiplier.
func (s *State) SetDoublePointsForNextQuestion(enable bool) {
	s.NextQuestionDoublePoints = enable
}

// CheckAndConsumeDoublePoints reports whether the multiplier was armed and
// clears it.
func (s *State) CheckAndConsumeDoublePoints() bool {
	armed := s.NextQuestionDoublePoints
	s.NextQuestionDoublePoints = false
	return armed
}
