package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"league-bot/api/api"
)

// leaderboardRow is one JSON row of the leaderboard response
type leaderboardRow struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
	Games  int64  `json:"games"`
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// LeaderboardHandler serves the open season leaderboard for one guild as JSON
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Writes the leaderboard rows, 404 when the guild has no active season,
// or 400 when no guild was given
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	guildID := r.URL.Query().Get("guild")
	if guildID == "" {
		http.Error(w, "guild query parameter is required", http.StatusBadRequest)
		return
	}

	entries, err := s.api.Leaderboard(guildID)
	if err != nil {
		if errors.Is(err, api.ErrNoActiveSeason) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("leaderboard request failed:", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]leaderboardRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, leaderboardRow{UserID: entry.UserID, Points: entry.Points, Games: entry.Games})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		log.Println("failed to encode leaderboard:", err)
	}
}
