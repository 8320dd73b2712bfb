package repository

import (
	"context"

	"github.com/idiomoji/server/internal/models"
)

// PuzzleRepository handles puzzle data access. Puzzles are keyed by their
// available date; a missing document returns (nil, nil).
type PuzzleRepository interface {
	Get(ctx context.Context, date string) (*models.Puzzle, error)
	Exists(ctx context.Context, date string) (bool, error)
	Create(ctx context.Context, puzzle models.Puzzle) error
	ListApproved(ctx context.Context, excludeIDs []string) ([]models.Puzzle, error)
}

// PlayerRepository handles player-stats documents, history included.
type PlayerRepository interface {
	Get(ctx context.Context, uid string) (*models.PlayerStats, error)
	// Init creates the player document on first sign-in, or refreshes the
	// display fields on subsequent ones.
	Init(ctx context.Context, uid, name, email, photoURL string) (*models.PlayerStats, error)
	Save(ctx context.Context, stats models.PlayerStats) error
	List(ctx context.Context) ([]models.PlayerStats, error)
}

// SubmissionRepository handles the moderation queue.
type SubmissionRepository interface {
	Create(ctx context.Context, submission models.Submission) error
	Get(ctx context.Context, id string) (*models.Submission, error)
	ListPending(ctx context.Context) ([]models.Submission, error)
	Delete(ctx context.Context, id string) error
}

// DailyGameRepository persists the per-(player, date) daily game state.
type DailyGameRepository interface {
	Get(ctx context.Context, uid, date string) (*models.DailyGame, error)
	Save(ctx context.Context, dg models.DailyGame) error
}

// ClaimRepository stores the boolean admin claim attached to an identity.
type ClaimRepository interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
	SetAdmin(ctx context.Context, uid string, admin bool) error
}
