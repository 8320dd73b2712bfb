package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SubmissionRepository implementation
func NewSubmissionRepository(db *sql.DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, s models.Submission) error {
	log := logger.FromContext(ctx).WithPrefix("submission_repo")
	log.Debug("creating submission: id=%s", s.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO submissions (id, emoji, answer, hint, submitted_by, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, s.ID, s.Emoji, s.Answer, s.Hint, s.SubmittedBy, s.Status, s.CreatedAt)
	if err != nil {
		log.Error("failed to create submission: %v", err)
	}
	return err
}

func (r *submissionRepository) Get(ctx context.Context, id string) (*models.Submission, error) {
	log := logger.FromContext(ctx).WithPrefix("submission_repo")
	log.Debug("getting submission: id=%s", id)

	var s models.Submission
	err := r.db.QueryRowContext(ctx, `
SELECT id, emoji, answer, hint, submitted_by, status, created_at
FROM submissions
WHERE id = ?
`, id).Scan(&s.ID, &s.Emoji, &s.Answer, &s.Hint, &s.SubmittedBy, &s.Status, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("submission not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get submission: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) ListPending(ctx context.Context) ([]models.Submission, error) {
	log := logger.FromContext(ctx).WithPrefix("submission_repo")
	log.Debug("listing pending submissions")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, emoji, answer, hint, submitted_by, status, created_at
FROM submissions
WHERE status = ?
ORDER BY created_at ASC
`, models.SubmissionPending)
	if err != nil {
		log.Error("failed to list pending submissions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.Emoji, &s.Answer, &s.Hint, &s.SubmittedBy, &s.Status, &s.CreatedAt); err != nil {
			log.Error("failed to scan submission row: %v", err)
			return nil, err
		}
		submissions = append(submissions, s)
	}

	log.Debug("found %d pending submissions", len(submissions))
	return submissions, rows.Err()
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("submission_repo")
	log.Debug("deleting submission: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete submission: %v", err)
	}
	return err
}
