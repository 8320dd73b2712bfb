package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/repository"
)

type claimRepository struct {
	db *sql.DB
}

// NewClaimRepository creates a new ClaimRepository implementation
func NewClaimRepository(db *sql.DB) repository.ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) IsAdmin(ctx context.Context, uid string) (bool, error) {
	var admin int
	err := r.db.QueryRowContext(ctx, `SELECT admin FROM claims WHERE uid = ?`, uid).Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("claim_repo").Error("failed to read claim: %v", err)
		return false, err
	}
	return admin != 0, nil
}

func (r *claimRepository) SetAdmin(ctx context.Context, uid string, admin bool) error {
	log := logger.FromContext(ctx).WithPrefix("claim_repo")
	log.Debug("setting admin claim: uid=%s, admin=%t", uid, admin)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO claims (uid, admin)
VALUES (?, ?)
ON CONFLICT(uid) DO UPDATE SET admin = excluded.admin
`, uid, boolToInt(admin))
	if err != nil {
		log.Error("failed to set admin claim: %v", err)
	}
	return err
}
