package repository

import (
	"context"

	"github.com/idiomoji/server/internal/models"
)

// RushRepository handles time-attack session and aggregate-stats data access.
type RushRepository interface {
	InsertSession(ctx context.Context, session models.TimeAttackSession) error
	GetSession(ctx context.Context, id string) (*models.TimeAttackSession, error)
	TopSessions(ctx context.Context, limit int) ([]models.TimeAttackSession, error)
	GetStats(ctx context.Context, uid string) (*models.TimeAttackStats, error)
	SaveStats(ctx context.Context, uid string, stats models.TimeAttackStats) error
}
