package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/game"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

// Service handles the submission queue: players file puzzle ideas, admins
// approve them onto a date or reject them.
type Service struct {
	puzzles     repository.PuzzleRepository
	submissions repository.SubmissionRepository
	now         func() time.Time
}

func NewService(puzzles repository.PuzzleRepository, submissions repository.SubmissionRepository) *Service {
	return &Service{
		puzzles:     puzzles,
		submissions: submissions,
		now:         time.Now,
	}
}

// Submit files a new pending submission from a player.
func (s *Service) Submit(ctx context.Context, uid, emoji, answer, hint string) (*models.Submission, error) {
	log := logger.FromContext(ctx)

	if game.Normalize(emoji) == "" {
		return nil, errors.NewValidationError("emoji", "cannot be empty")
	}
	if game.Normalize(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	submission := models.Submission{
		ID:          uuid.NewString(),
		Emoji:       emoji,
		Answer:      answer,
		Hint:        hint,
		SubmittedBy: uid,
		Status:      models.SubmissionPending,
		CreatedAt:   s.now(),
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		log.Error("failed to create submission: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("submission created: id=%s by=%s", submission.ID, uid)
	return &submission, nil
}

// Pending lists the moderation queue, oldest first.
func (s *Service) Pending(ctx context.Context) ([]models.Submission, error) {
	pending, err := s.submissions.ListPending(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list pending submissions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return pending, nil
}

// Approve schedules a submission as the puzzle for the given date. The date
// must be free; a second puzzle on the same date is a conflict.
func (s *Service) Approve(ctx context.Context, id, date string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)

	if _, err := time.Parse(game.DateFormat, date); err != nil {
		return nil, errors.NewValidationError("date", "must be YYYY-MM-DD")
	}

	submission, err := s.submissions.Get(ctx, id)
	if err != nil {
		log.Error("failed to load submission: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if submission == nil {
		return nil, errors.NewNotFoundError("submission", id)
	}

	taken, err := s.puzzles.Exists(ctx, date)
	if err != nil {
		log.Error("failed to check puzzle date: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if taken {
		return nil, errors.NewConflictError("a puzzle is already scheduled for " + date)
	}

	puzzle := models.Puzzle{
		ID:            date,
		Emoji:         submission.Emoji,
		Answer:        game.Normalize(submission.Answer),
		Hint:          submission.Hint,
		Approved:      true,
		SubmittedBy:   submission.SubmittedBy,
		AvailableDate: date,
		CreatedAt:     s.now(),
	}
	if err := s.puzzles.Create(ctx, puzzle); err != nil {
		log.Error("failed to create puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		// Puzzle exists; the leftover submission only clutters the queue.
		log.Warn("failed to delete approved submission %s: %v", id, err)
	}

	log.Info("submission approved: id=%s scheduled=%s", id, date)
	return &puzzle, nil
}

// Reject removes a submission. The optional reason is recorded in the log
// only; nothing is sent back to the submitter.
func (s *Service) Reject(ctx context.Context, id, reason string) error {
	log := logger.FromContext(ctx)

	submission, err := s.submissions.Get(ctx, id)
	if err != nil {
		log.Error("failed to load submission: %v", err)
		return errors.NewInternalError(err)
	}
	if submission == nil {
		return errors.NewNotFoundError("submission", id)
	}

	if err := s.submissions.Delete(ctx, id); err != nil {
		log.Error("failed to delete submission: %v", err)
		return errors.NewInternalError(err)
	}

	if reason != "" {
		log.Info("submission rejected: id=%s reason=%q", id, reason)
	} else {
		log.Info("submission rejected: id=%s", id)
	}
	return nil
}
