package domain

import "time"

// DNDSchedule is one quiet-hours window. Times are minutes of the day
// (0-1439); a window may wrap midnight (EndMinute < StartMinute).
type DNDSchedule struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Enabled     bool   `json:"isEnabled"`
}

// Contains reports whether minute falls inside the window, treating a
// wrapped window as [start,1440) plus [0,end).
func (s DNDSchedule) Contains(minute int) bool {
	if s.StartMinute <= s.EndMinute {
		return minute >= s.StartMinute && minute < s.EndMinute
	}
	return minute >= s.StartMinute || minute < s.EndMinute
}

// Smart detection pauses monitoring over the common lunch window even when
// no explicit schedule covers it.
const (
	smartLunchStart = 13 * 60
	smartLunchEnd   = 13*60 + 30

	SmartLunchLabel = "Smart Detect (Lunch)"
)

// EvaluateDND reports whether monitoring should be suppressed at now.
// Schedules are checked in list order and the first enabled match wins.
func EvaluateDND(now time.Time, schedules []DNDSchedule, smartDetection bool) (bool, string) {
	minute := now.Hour()*60 + now.Minute()

	for _, s := range schedules {
		if !s.Enabled {
			continue
		}
		if s.Contains(minute) {
			return true, s.Label
		}
	}

	if smartDetection && minute >= smartLunchStart && minute < smartLunchEnd {
		return true, SmartLunchLabel
	}

	return false, ""
}
