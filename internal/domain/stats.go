package domain

import "time"

type UserStats struct {
	TotalWorkouts   int    `json:"totalWorkouts"`
	CurrentStreak   int    `json:"currentStreak"`
	LastWorkoutDate string `json:"lastWorkoutDate,omitempty"` // day key, empty if never
}

// DailyAccumulation mirrors one day of the stats service's activity table.
// SedentaryMinutes holds committed minutes only; an in-flight session is
// added on top at display time.
type DailyAccumulation struct {
	Date             string `json:"date"`
	SedentaryMinutes int    `json:"sedentaryMinutes"`
	ActiveBreaks     int    `json:"activeBreaks"`
}

// ApplyWorkout records one completed workout against s.
// Completing on the day after LastWorkoutDate extends the streak, completing
// again on the same day leaves it alone, any other gap resets it to 1.
func ApplyWorkout(s UserStats, now time.Time, loc *time.Location) UserStats {
	today := DayKey(now, loc)
	yesterday := DayKey(now.AddDate(0, 0, -1), loc)

	streak := s.CurrentStreak
	switch s.LastWorkoutDate {
	case yesterday:
		streak++
	case today:
		// already counted today
	default:
		streak = 1
	}

	return UserStats{
		TotalWorkouts:   s.TotalWorkouts + 1,
		CurrentStreak:   streak,
		LastWorkoutDate: today,
	}
}
