package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/moveease/sitclock/internal/engine"
)

// StreamEngineEvents pushes engine state-change events to a presentation
// layer over SSE. The engine itself never knows who is listening.
// resolveUser supplies the caller's identity; the auth layer decides how.
func StreamEngineEvents(manager *engine.Manager, resolveUser func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := resolveUser(r)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		events, ok := manager.Events(userID)
		if !ok {
			http.Error(w, "no engine for user", http.StatusNotFound)
			return
		}

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}

				data, _ := json.Marshal(ev)
				w.Write([]byte("data: "))
				w.Write(data)
				w.Write([]byte("\n\n"))

				flusher.Flush()

			case <-r.Context().Done():
				return
			}
		}
	}
}
