package api

import (
	"net/http"
	"sort"

	"github.com/gorilla/websocket"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
)

// handleLeaderboard derives the aggregate standings from the full player set.
// Sortable by score (default), winRate or streak; ties keep document order.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := s.Players.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	rows := make([]models.LeaderboardPlayer, 0, len(players))
	for _, p := range players {
		rows = append(rows, models.LeaderboardPlayer{
			ID:       p.UID,
			Name:     p.Name,
			Email:    p.Email,
			PhotoURL: p.PhotoURL,
			Score:    p.TotalScore,
			WinRate:  p.WinRate(),
			Streak:   p.CurrentStreak,
		})
	}

	sortKey := r.URL.Query().Get("sort")
	switch sortKey {
	case "winRate":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].WinRate > rows[j].WinRate })
	case "streak":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Streak > rows[j].Streak })
	default:
		sortKey = "score"
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sort":        sortKey,
		"leaderboard": rows,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin browsers only; the feed carries no per-player data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleLeaderboardSocket subscribes the client to leaderboard change events.
// An optional ?kind=daily|timeattack narrows the feed.
func (s *Server) handleLeaderboardSocket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != "daily" && kind != "timeattack" {
		http.Error(w, "unknown kind", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed: %v", err)
		return
	}
	s.Hub.RegisterClient(conn, kind)
}
