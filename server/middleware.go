package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
)

type contextKey string // Define a custom type for context keys to avoid collisions

const (
	playerIDkey    contextKey = "player_id"
	playerIDCookie            = "player_id"
)

// PlayerIDFromContext returns the ID set by PlayerID, or "".
func PlayerIDFromContext(ctx context.Context) string {
	playerID, _ := ctx.Value(playerIDkey).(string)
	return playerID
}

func withPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDkey, playerID)
}

// Cors allows the configured origins, or every origin when none are set.
func Cors(origins []string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (len(origins) == 0 || slices.Contains(origins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// PlayerID makes sure every request carries a player ID cookie and puts the
// ID on the request context.
func PlayerID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var playerID string
		if c, err := r.Cookie(playerIDCookie); err == nil && c.Value != "" {
			playerID = c.Value
		} else {
			playerID = uuid.NewString()
			// nolint:exhaustruct
			http.SetCookie(w, &http.Cookie{
				Name:     playerIDCookie,
				Value:    playerID,
				Expires:  time.Now().Add(24 * time.Hour),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
		}

		h.ServeHTTP(w, r.WithContext(withPlayerID(r.Context(), playerID)))
	})
}
