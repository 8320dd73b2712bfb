package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/verify", s.handleVerify)
		r.Post("/verify", s.handleVerify)

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/time-attack/leaderboard", s.handleTimeAttackLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/check-admin", s.handleCheckAdmin)

			r.Get("/daily", s.handleDaily)
			r.Post("/daily/guess", s.handleDailyGuess)
			r.Post("/daily/hint", s.handleDailyHint)
			r.Get("/stats", s.handleStats)
			r.Post("/submissions", s.handleCreateSubmission)

			r.Post("/time-attack/start", s.handleTimeAttackStart)
			r.Post("/time-attack/guess", s.handleTimeAttackGuess)
			r.Post("/time-attack/hint", s.handleTimeAttackHint)
			r.Get("/time-attack/state", s.handleTimeAttackState)
			r.Post("/time-attack/end", s.handleTimeAttackEnd)
			r.Get("/time-attack/stats", s.handleTimeAttackStats)

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/submissions", s.handleListSubmissions)
				r.Post("/submissions/{id}/approve", s.handleApproveSubmission)
				r.Post("/submissions/{id}/reject", s.handleRejectSubmission)
			})
		})
	})

	r.Get("/ws/leaderboard", s.handleLeaderboardSocket)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
