package handlers

import (
	"net/http"
	"strconv"

	"github.com/aaronzipp/serpents-and-stairways/internal/leaderboard"
)

const defaultLeaderboardSize = 10

// HandleLeaderboard returns the top players by wins
func (ctx *Context) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if ctx.Wins == nil {
		http.Error(w, "Leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}

	n := defaultLeaderboardSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			http.Error(w, "Invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	entries, err := ctx.Wins.TopN(r.Context(), n)
	if err != nil {
		http.Error(w, "Leaderboard query failed", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleHealth is a liveness probe
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
