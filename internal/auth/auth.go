package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/idiomoji/server/internal/config"
	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "__session"

// SessionTTL is how long a minted session stays valid.
const SessionTTL = 5 * 24 * time.Hour

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	UID      string
	Name     string
	Email    string
	PhotoURL string
}

// Service exchanges identity-provider ID tokens for session tokens and
// answers admin-claim questions.
type Service struct {
	identitySecret []byte
	sessionSecret  []byte
	adminUIDs      map[string]bool
	claims         repository.ClaimRepository
	players        repository.PlayerRepository
	now            func() time.Time
}

func NewService(cfg config.Config, claims repository.ClaimRepository, players repository.PlayerRepository) *Service {
	adminUIDs := make(map[string]bool)
	for _, uid := range cfg.AdminUIDs() {
		adminUIDs[uid] = true
	}
	return &Service{
		identitySecret: []byte(cfg.IdentitySecret),
		sessionSecret:  []byte(cfg.SessionSecret),
		adminUIDs:      adminUIDs,
		claims:         claims,
		players:        players,
		now:            time.Now,
	}
}

// Login verifies an identity-provider ID token, initializes the player's
// profile document, and mints a session token good for SessionTTL.
func (s *Service) Login(ctx context.Context, idToken string) (string, *models.PlayerStats, error) {
	identity, err := s.verifyToken(idToken, s.identitySecret)
	if err != nil {
		return "", nil, errors.NewUnauthorizedError("invalid ID token")
	}

	stats, err := s.players.Init(ctx, identity.UID, identity.Name, identity.Email, identity.PhotoURL)
	if err != nil {
		logger.FromContext(ctx).Error("failed to initialize player profile: %v", err)
		return "", nil, errors.NewInternalError(err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":     identity.UID,
		"name":    identity.Name,
		"email":   identity.Email,
		"picture": identity.PhotoURL,
		"iat":     now.Unix(),
		"exp":     now.Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", nil, errors.NewInternalError(err)
	}
	return signed, stats, nil
}

// VerifySession validates a session token and returns the caller's identity.
func (s *Service) VerifySession(token string) (*Identity, error) {
	identity, err := s.verifyToken(token, s.sessionSecret)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid session")
	}
	return identity, nil
}

func (s *Service) verifyToken(raw string, secret []byte) (*Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	identity := &Identity{UID: uid}
	identity.Name, _ = claims["name"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.PhotoURL, _ = claims["picture"].(string)
	return identity, nil
}

// IsAdmin reports whether the uid holds the persisted admin claim.
func (s *Service) IsAdmin(ctx context.Context, uid string) (bool, error) {
	return s.claims.IsAdmin(ctx, uid)
}

// CheckAdmin grants the admin claim when the uid is on the configured
// allow-list, then reports the resulting claim state.
func (s *Service) CheckAdmin(ctx context.Context, uid string) (bool, error) {
	if s.adminUIDs[uid] {
		if err := s.claims.SetAdmin(ctx, uid, true); err != nil {
			return false, errors.NewInternalError(err)
		}
		logger.FromContext(ctx).Info("admin claim granted to %s", uid)
		return true, nil
	}
	return s.claims.IsAdmin(ctx, uid)
}
