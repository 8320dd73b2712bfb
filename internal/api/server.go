package api

import (
	"encoding/json"
	"net/http"

	"github.com/idiomoji/server/internal/auth"
	"github.com/idiomoji/server/internal/config"
	"github.com/idiomoji/server/internal/daily"
	"github.com/idiomoji/server/internal/live"
	"github.com/idiomoji/server/internal/moderation"
	"github.com/idiomoji/server/internal/repository"
	"github.com/idiomoji/server/internal/timeattack"
)

type Server struct {
	Config     config.Config
	Auth       *auth.Service
	Daily      *daily.Service
	TimeAttack *timeattack.Controller
	Moderation *moderation.Service
	Players    repository.PlayerRepository
	Hub        *live.Hub
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
