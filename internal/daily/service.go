package daily

import (
	"context"

	"github.com/idiomoji/server/internal/errors"
	"github.com/idiomoji/server/internal/game"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
	"github.com/idiomoji/server/internal/worker"
)

// JobQueue is the slice of the worker pool the service needs.
type JobQueue interface {
	Submit(worker.Job)
}

// HintKind values accepted by UseHint.
const (
	HintText    = "hint"
	HintPattern = "pattern"
)

// PuzzleView is the puzzle as shown to the player. The answer is withheld
// until the game is over; hint and pattern appear once requested.
type PuzzleView struct {
	ID      string `json:"id"`
	Emoji   string `json:"emoji"`
	Hint    string `json:"hint,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// State is the full daily-game payload returned to the client. Field names
// mirror the browser cache keys so clients can keep an offline copy.
type State struct {
	Game      models.DailyGame    `json:"currentGame"`
	Puzzle    PuzzleView          `json:"puzzle"`
	Stats     *models.PlayerStats `json:"playerStats,omitempty"`
	ShareText string              `json:"shareText,omitempty"`
}

// Service is the authoritative per-(player, date) daily game state machine.
type Service struct {
	puzzles   repository.PuzzleRepository
	players   repository.PlayerRepository
	games     repository.DailyGameRepository
	jobs      JobQueue
	publisher worker.Publisher
	today     func() string
}

func NewService(puzzles repository.PuzzleRepository, players repository.PlayerRepository, games repository.DailyGameRepository, jobs JobQueue, publisher worker.Publisher) *Service {
	return &Service{
		puzzles:   puzzles,
		players:   players,
		games:     games,
		jobs:      jobs,
		publisher: publisher,
		today:     game.Today,
	}
}

// StartOrResume returns today's game, creating a fresh one on first entry and
// restoring the saved state otherwise.
func (s *Service) StartOrResume(ctx context.Context, uid string) (*State, error) {
	log := logger.FromContext(ctx)
	date := s.today()

	puzzle, err := s.puzzles.Get(ctx, date)
	if err != nil {
		log.Error("failed to load daily puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("daily puzzle", date)
	}

	dg, err := s.games.Get(ctx, uid, date)
	if err != nil {
		log.Error("failed to load daily game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if dg == nil {
		dg = &models.DailyGame{
			PlayerUID: uid,
			Date:      date,
			PuzzleID:  puzzle.ID,
			Attempts:  []string{},
		}
		if err := s.games.Save(ctx, *dg); err != nil {
			log.Error("failed to save fresh daily game: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Debug("daily game started: uid=%s date=%s", uid, date)
	}

	return s.state(ctx, *dg, *puzzle), nil
}

// Guess applies one submitted answer. A guess against a finished game returns
// the final state unchanged.
func (s *Service) Guess(ctx context.Context, uid, guess string) (*State, error) {
	log := logger.FromContext(ctx)

	normalized := game.Normalize(guess)
	if normalized == "" {
		return nil, errors.NewValidationError("guess", "cannot be empty")
	}

	dg, puzzle, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if dg.GameOver {
		return s.state(ctx, *dg, *puzzle), nil
	}

	dg.Attempts = append(dg.Attempts, normalized)
	correct := normalized == game.Normalize(puzzle.Answer)

	if correct {
		dg.GameOver = true
		dg.Won = true
		dg.Score = game.DailyScore(len(dg.Attempts), dg.ShowHint, dg.ShowPatternHint)
	} else if len(dg.Attempts) >= game.MaxDailyAttempts {
		dg.GameOver = true
		dg.Won = false
		dg.Score = 0
	}

	if err := s.games.Save(ctx, *dg); err != nil {
		log.Error("failed to save daily game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if dg.GameOver {
		log.Info("daily game finished: uid=%s won=%t attempts=%d score=%d", uid, dg.Won, len(dg.Attempts), dg.Score)
		s.finalize(ctx, *dg)
	}

	return s.state(ctx, *dg, *puzzle), nil
}

// UseHint turns on a hint flag. Flags never turn back off, and a second
// request for the same flag is a no-op.
func (s *Service) UseHint(ctx context.Context, uid, kind string) (*State, error) {
	log := logger.FromContext(ctx)

	dg, puzzle, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if dg.GameOver {
		return nil, errors.NewBadRequestError("game is already over")
	}

	switch kind {
	case HintText:
		dg.ShowHint = true
	case HintPattern:
		dg.ShowPatternHint = true
	default:
		return nil, errors.NewValidationError("type", "must be 'hint' or 'pattern'")
	}

	if err := s.games.Save(ctx, *dg); err != nil {
		log.Error("failed to save daily game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.state(ctx, *dg, *puzzle), nil
}

// Stats returns the player's record, creating nothing.
func (s *Service) Stats(ctx context.Context, uid string) (*models.PlayerStats, error) {
	stats, err := s.players.Get(ctx, uid)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load player stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		return nil, errors.NewNotFoundError("player", uid)
	}
	return stats, nil
}

func (s *Service) load(ctx context.Context, uid string) (*models.DailyGame, *models.Puzzle, error) {
	log := logger.FromContext(ctx)
	date := s.today()

	dg, err := s.games.Get(ctx, uid, date)
	if err != nil {
		log.Error("failed to load daily game: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	if dg == nil {
		return nil, nil, errors.NewBadRequestError("no daily game in progress")
	}

	puzzle, err := s.puzzles.Get(ctx, dg.PuzzleID)
	if err != nil {
		log.Error("failed to load daily puzzle: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, nil, errors.NewNotFoundError("daily puzzle", dg.PuzzleID)
	}
	return dg, puzzle, nil
}

// finalize folds the finished game into the player's cumulative stats and
// schedules the persistent write. The fold is applied in memory first so a
// repeated finish on the same date stays a no-op.
func (s *Service) finalize(ctx context.Context, dg models.DailyGame) {
	log := logger.FromContext(ctx)

	stats, err := s.players.Get(ctx, dg.PlayerUID)
	if err != nil || stats == nil {
		log.Error("failed to load player stats for sync: %v", err)
		return
	}

	result := models.DailyStats{
		Date:            dg.Date,
		Attempts:        len(dg.Attempts),
		UsedHint:        dg.ShowHint,
		UsedPatternHint: dg.ShowPatternHint,
		Won:             dg.Won,
		Score:           dg.Score,
		AttemptValues:   dg.Attempts,
	}
	if !game.ApplyDailyResult(stats, result) {
		log.Debug("history already has %s, skipping sync", dg.Date)
		return
	}

	s.jobs.Submit(&worker.SyncPlayerStatsJob{
		PlayerRepo: s.players,
		Stats:      *stats,
		Publisher:  s.publisher,
	})
}

func (s *Service) state(ctx context.Context, dg models.DailyGame, puzzle models.Puzzle) *State {
	view := PuzzleView{ID: puzzle.ID, Emoji: puzzle.Emoji}
	if dg.ShowHint {
		view.Hint = puzzle.Hint
	}
	if dg.ShowPatternHint {
		view.Pattern = game.LetterPattern(puzzle.Answer)
	}
	if dg.GameOver {
		view.Answer = puzzle.Answer
	}

	st := &State{Game: dg, Puzzle: view}
	if dg.GameOver {
		st.ShareText = ShareSummary(dg)
	}

	// Best effort; the game state is still useful without the record.
	stats, err := s.players.Get(ctx, dg.PlayerUID)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load player stats for state: %v", err)
	} else {
		st.Stats = stats
	}
	return st
}
