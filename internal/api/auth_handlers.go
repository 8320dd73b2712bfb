package api

import (
	"net/http"

	"github.com/idiomoji/server/internal/auth"
	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/logger"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := decodeJSON(r, &req); err != nil || req.IDToken == "" {
		handleError(w, r, errors.NewBadRequestError("idToken required"))
		return
	}

	token, stats, err := s.Auth.Login(r.Context(), req.IDToken)
	if err != nil {
		handleError(w, r, err)
		return
	}

	auth.WriteSessionCookie(w, token, s.Config.Production())
	log.Info("session created for %s", stats.UID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"playerStats": stats,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, s.Config.Production())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleVerify reports whether the session cookie is valid and whether the
// caller holds the admin claim. Unlike the guarded routes it answers 200 with
// isValid=false instead of a 401.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, map[string]any{"isValid": false, "isAdmin": false})
		return
	}

	identity, err := s.Auth.VerifySession(cookie.Value)
	if err != nil {
		auth.ClearSessionCookie(w, s.Config.Production())
		writeJSON(w, http.StatusOK, map[string]any{"isValid": false, "isAdmin": false})
		return
	}

	isAdmin, err := s.Auth.IsAdmin(r.Context(), identity.UID)
	if err != nil {
		logger.FromContext(r.Context()).Warn("failed to read admin claim: %v", err)
		isAdmin = false
	}
	writeJSON(w, http.StatusOK, map[string]any{"isValid": true, "isAdmin": isAdmin})
}

func (s *Server) handleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	isAdmin, err := s.Auth.CheckAdmin(r.Context(), identity.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"isAdmin": isAdmin})
}
