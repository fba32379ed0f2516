package domain

import "time"

// DayKey formats t as a calendar-day key (YYYY-MM-DD) in the given location.
// Accumulation rows are always keyed in the stats service's timezone, not the
// machine's local one, so day boundaries agree across devices.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// LastNDayKeys returns n day keys ending with today, oldest first.
func LastNDayKeys(now time.Time, loc *time.Location, n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DayKey(now.AddDate(0, 0, -(n-1-i)), loc)
	}
	return keys
}
