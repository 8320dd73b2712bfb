package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idiomoji/server/internal/auth"
	"github.com/idiomoji/server/internal/config"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/moderation"
	"github.com/idiomoji/server/internal/testutil/mocks"
)

type apiFixture struct {
	server      *Server
	players     *mocks.MockPlayerRepository
	claims      *mocks.MockClaimRepository
	puzzles     *mocks.MockPuzzleRepository
	submissions *mocks.MockSubmissionRepository
	handler     http.Handler
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		players:     new(mocks.MockPlayerRepository),
		claims:      new(mocks.MockClaimRepository),
		puzzles:     new(mocks.MockPuzzleRepository),
		submissions: new(mocks.MockSubmissionRepository),
	}
	cfg := config.Config{
		SessionSecret:  "session-secret",
		IdentitySecret: "identity-secret",
		Env:            "development",
	}
	f.server = &Server{
		Config:     cfg,
		Auth:       auth.NewService(cfg, f.claims, f.players),
		Moderation: moderation.NewService(f.puzzles, f.submissions),
		Players:    f.players,
	}
	f.handler = f.server.Routes()
	return f
}

func (f *apiFixture) sessionCookie(t *testing.T, uid string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uid,
		"name": "Ada",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("session-secret"))
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: signed}
}

func TestGuardedRouteWithoutCookie(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/daily", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirectTo"])
}

func TestGuardedRouteClearsInvalidCookie(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "invalid cookie should be expired")
}

func TestVerifyWithoutCookie(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["isValid"])
}

func TestVerifyWithValidCookie(t *testing.T) {
	f := newAPIFixture()
	f.claims.On("IsAdmin", mock.Anything, "uid-1").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
	req.AddCookie(f.sessionCookie(t, "uid-1"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["isValid"])
	assert.Equal(t, true, body["isAdmin"])
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newAPIFixture()
	f.players.On("Init", mock.Anything, "uid-1", "Ada", "", "").
		Return(&models.PlayerStats{UID: "uid-1", Name: "Ada"}, nil)

	idToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "uid-1",
		"name": "Ada",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := idToken.SignedString([]byte("identity-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"idToken":"`+signed+`"}`))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)
	assert.False(t, sessionCookie.Secure, "plain HTTP outside production")
	assert.NotEmpty(t, sessionCookie.Value)
}

func TestAdminRouteForbiddenWithoutClaim(t *testing.T) {
	f := newAPIFixture()
	f.claims.On("IsAdmin", mock.Anything, "uid-1").Return(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/submissions", nil)
	req.AddCookie(f.sessionCookie(t, "uid-1"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApproveConflictReturns409(t *testing.T) {
	f := newAPIFixture()
	f.claims.On("IsAdmin", mock.Anything, "admin-1").Return(true, nil)
	f.submissions.On("Get", mock.Anything, "sub-1").Return(&models.Submission{
		ID: "sub-1", Emoji: "🐘", Answer: "elephant in the room", Status: models.SubmissionPending,
	}, nil)
	f.puzzles.On("Exists", mock.Anything, "2026-09-01").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/submissions/sub-1/approve",
		strings.NewReader(`{"date":"2026-09-01"}`))
	req.AddCookie(f.sessionCookie(t, "admin-1"))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaderboardSorting(t *testing.T) {
	f := newAPIFixture()
	f.players.On("List", mock.Anything).Return([]models.PlayerStats{
		{UID: "a", Name: "A", TotalGames: 10, TotalWins: 2, TotalScore: 900, CurrentStreak: 7},
		{UID: "b", Name: "B", TotalGames: 4, TotalWins: 4, TotalScore: 400, CurrentStreak: 4},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?sort=winRate", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sort        string                     `json:"sort"`
		Leaderboard []models.LeaderboardPlayer `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "winRate", body.Sort)
	require.Len(t, body.Leaderboard, 2)
	assert.Equal(t, "b", body.Leaderboard[0].ID, "100% win rate ranks first")
	assert.Equal(t, 100, body.Leaderboard[0].WinRate)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
