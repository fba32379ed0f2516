package main

import (
	"context"
	"log"
	"net/http"
)

type contextKey string

const UserIDKey contextKey = "userId"

func ExtractUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Traefik BasicAuth sets this header
		userId := r.Header.Get("X-Auth-User")

		// Also check common alternatives
		if userId == "" {
			userId = r.Header.Get("X-Forwarded-User")
		}
		if userId == "" {
			userId = r.Header.Get("Remote-User")
		}

		if userId == "" {
			log.Printf("authentication failed: no user header found")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserId(r *http.Request) string {
	userId, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userId
}
