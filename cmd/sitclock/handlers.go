package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/moveease/sitclock/internal/domain"
	"github.com/moveease/sitclock/internal/engine"
)

func startSession(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := GetUserId(r)

		e, err := m.Start(userID)
		if err != nil {
			respondError(w, err.Error(), http.StatusConflict)
			return
		}

		respondJSON(w, e.Snapshot(), http.StatusCreated)
	}
}

func stopSession(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Stop(GetUserId(r)); err != nil {
			respondError(w, err.Error(), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func getState(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		respondJSON(w, e.Snapshot(), http.StatusOK)
	}
}

func getBadges(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		snap := e.Snapshot()
		respondJSON(w, domain.Badges(snap.Stats, snap.TodayTotalMinutes), http.StatusOK)
	}
}

// engineAction adapts the engine's no-argument operations to handlers.
func engineAction(m *engine.Manager, op func(*engine.Engine)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		op(e)
		w.WriteHeader(http.StatusNoContent)
	}
}

func startCountdown(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		var req struct {
			Seconds int `json:"seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Seconds <= 0 {
			respondError(w, "seconds must be positive", http.StatusBadRequest)
			return
		}

		e.StartCountdown(time.Duration(req.Seconds) * time.Second)
		w.WriteHeader(http.StatusNoContent)
	}
}

func setVisibility(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		var req struct {
			Foreground bool `json:"foreground"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		e.SetVisibility(req.Foreground)
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateSettings(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		var settings domain.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if settings.SedentaryThresholdMin <= 0 {
			respondError(w, "sedentaryThreshold must be positive", http.StatusBadRequest)
			return
		}

		e.UpdateSettings(settings)
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateProfile(m *engine.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := m.Get(GetUserId(r))
		if !ok {
			respondError(w, "no active session", http.StatusNotFound)
			return
		}

		var req struct {
			Name   string `json:"name"`
			Avatar string `json:"avatar"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		e.UpdateProfile(req.Name, req.Avatar)
		w.WriteHeader(http.StatusNoContent)
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
