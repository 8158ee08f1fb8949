package incentive

// ScoreUpdate is the result of applying points to the daily score.
type ScoreUpdate struct {
	NewScore              int
	IsNewRecord           bool
	ShouldShowRecordPopup bool
}

// UpdateDailyScore adds points (which may be negative) to today's score.
// Positive points also accumulate into TotalPoints. The record popup is
// offered at most once per day, never on the first day of use, and never
// for the first nonzero high score.
func (s *State) UpdateDailyScore(points int, today string) ScoreUpdate {
	s.Rollover(today)

	previousHigh := s.HighScore
	s.DailyScore += points
	if points > 0 {
		s.TotalPoints += points
	}

	upd := ScoreUpdate{NewScore: s.DailyScore}
	if s.DailyScore > s.HighScore {
		upd.IsNewRecord = true
		s.HighScore = s.DailyScore
	}

	if upd.IsNewRecord &&
		s.FirstUsageDate != today &&
		previousHigh > 0 &&
		!s.HasShownRecordPopupToday {
		upd.ShouldShowRecordPopup = true
		s.HasShownRecordPopupToday = true
	}
	return upd
}

// StreakUpdate is the result of recording one answer against the streak.
type StreakUpdate struct {
	CurrentStreak int
	// Achievement is the milestone reached by this answer, or 0.
	Achievement int
}

// UpdateStreak extends the streak on a correct and fast answer and resets
// it otherwise. The streak also resets when the day changes.
func (s *State) UpdateStreak(correctAndFast bool, today string) StreakUpdate {
	if s.LastStreakDate != today {
		s.CurrentStreak = 0
		s.LastStreakDate = today
	}

	if !correctAndFast {
		s.CurrentStreak = 0
		return StreakUpdate{}
	}

	s.CurrentStreak++
	upd := StreakUpdate{CurrentStreak: s.CurrentStreak}
	for _, m := range StreakMilestones {
		if s.CurrentStreak == m {
			upd.Achievement = m
			break
		}
	}
	return upd
}
