package api

import (
	"net/http"

	"github.com/idiomoji/server/internal/errors"
)

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	state, err := s.Daily.StartOrResume(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Guess string `json:"guess"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	state, err := s.Daily.Guess(r.Context(), identity.UID, req.Guess)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDailyHint(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Type string `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	state, err := s.Daily.UseHint(r.Context(), identity.UID, req.Type)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	stats, err := s.Daily.Stats(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"playerStats": stats,
		"winRate":     stats.WinRate(),
	})
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Emoji  string `json:"emoji"`
		Answer string `json:"answer"`
		Hint   string `json:"hint"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	submission, err := s.Moderation.Submit(r.Context(), identity.UID, req.Emoji, req.Answer, req.Hint)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}
