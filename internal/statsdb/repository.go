// Package statsdb is the stats service's storage layer: per-user totals, the
// rolling daily activity table, the mirrored quick-timer deadline, profiles
// and announcements.
package statsdb

import "time"

type StatsRecord struct {
	UserID          string
	TotalWorkouts   int
	CurrentStreak   int
	LastWorkoutDate string // day key, empty if never
	TimerEndAt      int64  // epoch millis, 0 when idle
	TimerDuration   int    // seconds
}

type ActivityRecord struct {
	UserID           string
	Date             string // day key in the service timezone
	SedentaryMinutes int
	ActiveBreaks     int
}

type ProfileRecord struct {
	UserID    string
	Username  string
	AvatarURL string
}

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// GetStats returns a zeroed record for unknown users; the client's
	// migration guard depends on zero meaning "never synced".
	GetStats(userID string) (*StatsRecord, error)

	// UpsertStats writes the workout totals without touching the timer
	// columns.
	UpsertStats(rec *StatsRecord) error

	// SetTimer writes the mirrored countdown deadline without touching
	// the workout columns.
	SetTimer(userID string, endAt int64, durationSec int) error

	// UpsertActivity records a day's accumulation. Sedentary minutes only
	// ever grow within a day; a smaller incoming value is ignored.
	UpsertActivity(rec *ActivityRecord) error

	// GetRecentActivity lists rows with date >= fromDate, oldest first.
	GetRecentActivity(userID, fromDate string) ([]ActivityRecord, error)

	GetProfile(userID string) (*ProfileRecord, error)

	UpdateProfile(rec *ProfileRecord) error

	ListAnnouncements(limit int) ([]Announcement, error)

	CreateAnnouncement(title, content string) (int64, error)

	Close() error
}
