package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/moveease/sitclock/internal/domain"
	"github.com/moveease/sitclock/internal/statsdb"
)

type statsPayload struct {
	TotalWorkouts   int    `json:"total_workouts"`
	CurrentStreak   int    `json:"current_streak"`
	LastWorkoutDate string `json:"last_workout_date,omitempty"`
	TimerEndAt      int64  `json:"timer_end_at"`
	TimerDuration   int    `json:"timer_duration"`
	Username        string `json:"username,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
}

type activityPayload struct {
	Date             string `json:"activity_date_str"`
	SedentaryMinutes int    `json:"sedentary_minutes"`
	ActiveBreaks     int    `json:"active_breaks"`
}

func getStats(repo statsdb.Repository, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			respondError(w, "missing userId", http.StatusBadRequest)
			return
		}

		stats, err := repo.GetStats(userID)
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		profile, err := repo.GetProfile(userID)
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		weekAgo := domain.DayKey(time.Now().AddDate(0, 0, -6), loc)
		activity, err := repo.GetRecentActivity(userID, weekAgo)
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := struct {
			Stats    statsPayload      `json:"stats"`
			Activity []activityPayload `json:"activity"`
		}{
			Stats: statsPayload{
				TotalWorkouts:   stats.TotalWorkouts,
				CurrentStreak:   stats.CurrentStreak,
				LastWorkoutDate: stats.LastWorkoutDate,
				TimerEndAt:      stats.TimerEndAt,
				TimerDuration:   stats.TimerDuration,
				Username:        profile.Username,
				AvatarURL:       profile.AvatarURL,
			},
			Activity: make([]activityPayload, 0, len(activity)),
		}
		for _, a := range activity {
			out.Activity = append(out.Activity, activityPayload{
				Date:             a.Date,
				SedentaryMinutes: a.SedentaryMinutes,
				ActiveBreaks:     a.ActiveBreaks,
			})
		}

		respondJSON(w, out, http.StatusOK)
	}
}

func postStats(repo statsdb.Repository, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID                string `json:"userId"`
			TotalWorkouts         int    `json:"totalWorkouts"`
			CurrentStreak         int    `json:"currentStreak"`
			LastWorkoutDate       string `json:"lastWorkoutDate"`
			TodaySedentaryMinutes int    `json:"todaySedentaryMinutes"`
			TodayBreaks           int    `json:"todayBreaks"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			respondError(w, "missing userId", http.StatusBadRequest)
			return
		}

		err := repo.UpsertStats(&statsdb.StatsRecord{
			UserID:          req.UserID,
			TotalWorkouts:   req.TotalWorkouts,
			CurrentStreak:   req.CurrentStreak,
			LastWorkoutDate: req.LastWorkoutDate,
		})
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Today is the service's today, not whatever day the client thinks
		// it is.
		err = repo.UpsertActivity(&statsdb.ActivityRecord{
			UserID:           req.UserID,
			Date:             domain.DayKey(time.Now(), loc),
			SedentaryMinutes: req.TodaySedentaryMinutes,
			ActiveBreaks:     req.TodayBreaks,
		})
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func postTimer(repo statsdb.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID   string `json:"userId"`
			EndAt    int64  `json:"endAt"`
			Duration int    `json:"duration"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			respondError(w, "missing userId", http.StatusBadRequest)
			return
		}

		if err := repo.SetTimer(req.UserID, req.EndAt, req.Duration); err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func updateProfile(repo statsdb.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Avatar string `json:"avatar"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			respondError(w, "missing user id", http.StatusBadRequest)
			return
		}

		err := repo.UpdateProfile(&statsdb.ProfileRecord{
			UserID:    req.ID,
			Username:  req.Name,
			AvatarURL: req.Avatar,
		})
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listAnnouncements(repo statsdb.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.ListAnnouncements(50)
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []statsdb.Announcement{}
		}

		respondJSON(w, list, http.StatusOK)
	}
}

func createAnnouncement(repo statsdb.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Title == "" || req.Content == "" {
			respondError(w, "missing title or content", http.StatusBadRequest)
			return
		}

		id, err := repo.CreateAnnouncement(req.Title, req.Content)
		if err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJSON(w, map[string]int64{"id": id}, http.StatusCreated)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
