package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

type puzzleRepository struct {
	db *sql.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(db *sql.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: db}
}

func (r *puzzleRepository) Get(ctx context.Context, date string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: date=%s", date)

	var p models.Puzzle
	var approved int
	err := r.db.QueryRowContext(ctx, `
SELECT id, emoji, answer, hint, approved, submitted_by, created_at
FROM puzzles
WHERE id = ?
`, date).Scan(&p.ID, &p.Emoji, &p.Answer, &p.Hint, &approved, &p.SubmittedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("puzzle not found: date=%s", date)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	p.Approved = approved != 0
	p.AvailableDate = p.ID
	return &p, nil
}

func (r *puzzleRepository) Exists(ctx context.Context, date string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM puzzles WHERE id = ?`, date).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *puzzleRepository) Create(ctx context.Context, puzzle models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("creating puzzle: date=%s", puzzle.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO puzzles (id, emoji, answer, hint, approved, submitted_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, puzzle.ID, puzzle.Emoji, puzzle.Answer, puzzle.Hint, boolToInt(puzzle.Approved), puzzle.SubmittedBy, puzzle.CreatedAt)
	if err != nil {
		log.Error("failed to create puzzle: %v", err)
	}
	return err
}

func (r *puzzleRepository) ListApproved(ctx context.Context, excludeIDs []string) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing approved puzzles, excluding %d ids", len(excludeIDs))

	query := sqlBuilder.Select("id", "emoji", "answer", "hint", "approved", "submitted_by", "created_at").
		From("puzzles").
		Where(squirrel.Eq{"approved": 1}).
		OrderBy("id ASC")
	if len(excludeIDs) > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeIDs})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list approved puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		var p models.Puzzle
		var approved int
		if err := rows.Scan(&p.ID, &p.Emoji, &p.Answer, &p.Hint, &approved, &p.SubmittedBy, &p.CreatedAt); err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		p.Approved = approved != 0
		p.AvailableDate = p.ID
		puzzles = append(puzzles, p)
	}

	log.Debug("found %d approved puzzles", len(puzzles))
	return puzzles, rows.Err()
}
