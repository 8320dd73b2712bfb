package api

import (
	"net/http"
	"strconv"

	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/models"
)

func (s *Server) handleTimeAttackStart(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	state, err := s.TimeAttack.Start(r.Context(), *identity)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleTimeAttackGuess(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Guess string `json:"guess"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	state, err := s.TimeAttack.Guess(r.Context(), identity.UID, req.Guess)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleTimeAttackHint(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	state, err := s.TimeAttack.UseHint(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleTimeAttackState(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	state, err := s.TimeAttack.State(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleTimeAttackEnd(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	state, err := s.TimeAttack.End(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// timeAttackRow is one leaderboard entry; duration is recomputed from the
// stored start and end times.
type timeAttackRow struct {
	SessionID       string  `json:"sessionId"`
	PlayerName      string  `json:"playerName"`
	PlayerPhotoURL  string  `json:"playerPhotoURL,omitempty"`
	Score           int     `json:"score"`
	PuzzlesSolved   int     `json:"puzzlesSolved"`
	DurationSeconds float64 `json:"durationSeconds"`
}

func (s *Server) handleTimeAttackLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sessions, err := s.TimeAttack.Leaderboard(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	rows := make([]timeAttackRow, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, timeAttackRow{
			SessionID:       sess.ID,
			PlayerName:      sess.PlayerName,
			PlayerPhotoURL:  sess.PlayerPhotoURL,
			Score:           sess.Score,
			PuzzlesSolved:   countSolved(sess),
			DurationSeconds: sess.EndTime.Sub(sess.StartTime).Seconds(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func countSolved(sess models.TimeAttackSession) int {
	solved := 0
	for _, a := range sess.PuzzleAttempts {
		if a.Correct {
			solved++
		}
	}
	return solved
}

func (s *Server) handleTimeAttackStats(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	stats, err := s.TimeAttack.Stats(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
