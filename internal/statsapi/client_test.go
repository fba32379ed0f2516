package statsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stats", r.URL.Path)
		require.Equal(t, "u-42", r.URL.Query().Get("userId"))

		json.NewEncoder(w).Encode(StatsResponse{
			Stats: StatsPayload{TotalWorkouts: 12, CurrentStreak: 4, LastWorkoutDate: "2025-06-09"},
			Activity: []ActivityEntry{
				{Date: "2025-06-09", SedentaryMinutes: 90, ActiveBreaks: 3},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.FetchStats(context.Background(), "u-42")
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Stats.TotalWorkouts)
	assert.Equal(t, 4, resp.Stats.CurrentStreak)
	require.Len(t, resp.Activity, 1)
	assert.Equal(t, 90, resp.Activity[0].SedentaryMinutes)
}

func TestFetchStatsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchStats(context.Background(), "u-42")
	assert.Error(t, err)
}

func TestPushStats(t *testing.T) {
	var got PushStatsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/stats", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushStats(context.Background(), PushStatsRequest{
		UserID:                "u-42",
		TotalWorkouts:         13,
		CurrentStreak:         5,
		LastWorkoutDate:       "2025-06-10",
		TodaySedentaryMinutes: 75,
		TodayBreaks:           2,
	})
	require.NoError(t, err)

	assert.Equal(t, "u-42", got.UserID)
	assert.Equal(t, 75, got.TodaySedentaryMinutes)
}

func TestPushTimerClear(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/timer", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushTimer(context.Background(), "u-42", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, float64(0), got["endAt"])
	assert.Equal(t, float64(0), got["duration"])
}
