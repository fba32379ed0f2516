// Package statsapi is the HTTP client for the stats service. Every call is
// best-effort from the engine's point of view: failures are returned, logged
// by the caller and never retried in place.
package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type StatsPayload struct {
	TotalWorkouts   int    `json:"total_workouts"`
	CurrentStreak   int    `json:"current_streak"`
	LastWorkoutDate string `json:"last_workout_date,omitempty"`
	TimerEndAt      int64  `json:"timer_end_at"`
	TimerDuration   int    `json:"timer_duration"`
	Username        string `json:"username,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
}

type ActivityEntry struct {
	Date             string `json:"activity_date_str"`
	SedentaryMinutes int    `json:"sedentary_minutes"`
	ActiveBreaks     int    `json:"active_breaks"`
}

type StatsResponse struct {
	Stats    StatsPayload    `json:"stats"`
	Activity []ActivityEntry `json:"activity"`
}

func (c *Client) FetchStats(ctx context.Context, userID string) (*StatsResponse, error) {
	endpoint := fmt.Sprintf("%s/api/stats?userId=%s", c.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned %d", resp.StatusCode)
	}

	var out StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return &out, nil
}

type PushStatsRequest struct {
	UserID                string `json:"userId"`
	TotalWorkouts         int    `json:"totalWorkouts"`
	CurrentStreak         int    `json:"currentStreak"`
	LastWorkoutDate       string `json:"lastWorkoutDate,omitempty"`
	TodaySedentaryMinutes int    `json:"todaySedentaryMinutes"`
	TodayBreaks           int    `json:"todayBreaks"`
}

func (c *Client) PushStats(ctx context.Context, req PushStatsRequest) error {
	return c.post(ctx, "/api/stats", req)
}

type pushTimerRequest struct {
	UserID   string `json:"userId"`
	EndAt    int64  `json:"endAt"`
	Duration int    `json:"duration"`
}

// PushTimer mirrors the quick countdown deadline. endAt=0, duration=0
// clears it.
func (c *Client) PushTimer(ctx context.Context, userID string, endAt int64, durationSec int) error {
	return c.post(ctx, "/api/timer", pushTimerRequest{UserID: userID, EndAt: endAt, Duration: durationSec})
}

type updateProfileRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (c *Client) UpdateProfile(ctx context.Context, userID, name, avatar string) error {
	return c.post(ctx, "/api/update-profile", updateProfileRequest{ID: userID, Name: name, Avatar: avatar})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stats service returned %d for %s", resp.StatusCode, path)
	}

	return nil
}
