package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idiomoji/server/internal/errors"
)

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	pending, err := s.Moderation.Pending(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": pending})
}

func (s *Server) handleApproveSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Date == "" {
		handleError(w, r, errors.NewBadRequestError("date required"))
		return
	}

	puzzle, err := s.Moderation.Approve(r.Context(), id, req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, puzzle)
}

func (s *Server) handleRejectSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional on reject.
	_ = decodeJSON(r, &req)

	if err := s.Moderation.Reject(r.Context(), id, req.Reason); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
