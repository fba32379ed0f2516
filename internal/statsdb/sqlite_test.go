package statsdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestGetStatsUnknownUserIsZeroed(t *testing.T) {
	repo := newTestRepo(t)

	rec, err := repo.GetStats("nobody")
	require.NoError(t, err)

	assert.Equal(t, "nobody", rec.UserID)
	assert.Equal(t, 0, rec.TotalWorkouts)
	assert.Equal(t, int64(0), rec.TimerEndAt)
}

func TestUpsertStatsKeepsTimerColumns(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SetTimer("u1", 1749546000000, 600))
	require.NoError(t, repo.UpsertStats(&StatsRecord{
		UserID: "u1", TotalWorkouts: 3, CurrentStreak: 2, LastWorkoutDate: "2025-06-10",
	}))

	rec, err := repo.GetStats("u1")
	require.NoError(t, err)

	assert.Equal(t, 3, rec.TotalWorkouts)
	assert.Equal(t, int64(1749546000000), rec.TimerEndAt)
	assert.Equal(t, 600, rec.TimerDuration)
}

func TestSetTimerKeepsStatsColumns(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.UpsertStats(&StatsRecord{UserID: "u1", TotalWorkouts: 9}))
	require.NoError(t, repo.SetTimer("u1", 0, 0))

	rec, err := repo.GetStats("u1")
	require.NoError(t, err)
	assert.Equal(t, 9, rec.TotalWorkouts)
}

func TestActivityMinutesAreMonotonic(t *testing.T) {
	repo := newTestRepo(t)

	day := &ActivityRecord{UserID: "u1", Date: "2025-06-10", SedentaryMinutes: 80, ActiveBreaks: 3}
	require.NoError(t, repo.UpsertActivity(day))

	// A stale write with smaller values must not shrink the day.
	stale := &ActivityRecord{UserID: "u1", Date: "2025-06-10", SedentaryMinutes: 50, ActiveBreaks: 1}
	require.NoError(t, repo.UpsertActivity(stale))

	rows, err := repo.GetRecentActivity("u1", "2025-06-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 80, rows[0].SedentaryMinutes)
	assert.Equal(t, 3, rows[0].ActiveBreaks)
}

func TestGetRecentActivityWindow(t *testing.T) {
	repo := newTestRepo(t)

	for _, date := range []string{"2025-06-01", "2025-06-05", "2025-06-10"} {
		require.NoError(t, repo.UpsertActivity(&ActivityRecord{
			UserID: "u1", Date: date, SedentaryMinutes: 10,
		}))
	}

	rows, err := repo.GetRecentActivity("u1", "2025-06-04")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-06-05", rows[0].Date)
	assert.Equal(t, "2025-06-10", rows[1].Date)
}

func TestProfileRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.UpdateProfile(&ProfileRecord{
		UserID: "u1", Username: "Anna", AvatarURL: "https://a/b.png",
	}))

	rec, err := repo.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", rec.Username)

	require.NoError(t, repo.UpdateProfile(&ProfileRecord{UserID: "u1", Username: "Anna K."}))

	rec, err = repo.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "Anna K.", rec.Username)
	assert.Equal(t, "", rec.AvatarURL)
}

func TestAnnouncements(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.CreateAnnouncement("Maintenance", "Back by noon.")
	require.NoError(t, err)
	id, err := repo.CreateAnnouncement("New badges", "Check the wall.")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	list, err := repo.ListAnnouncements(50)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
