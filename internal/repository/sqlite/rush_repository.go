package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

type rushRepository struct {
	db *sql.DB
}

// NewRushRepository creates a new RushRepository implementation
func NewRushRepository(db *sql.DB) repository.RushRepository {
	return &rushRepository{db: db}
}

func (r *rushRepository) InsertSession(ctx context.Context, session models.TimeAttackSession) error {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("inserting session: id=%s, score=%d, attempts=%d", session.ID, session.Score, len(session.PuzzleAttempts))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO rush_sessions (id, player_id, player_name, player_photo_url, start_time, end_time, score)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, session.ID, session.PlayerID, session.PlayerName, session.PlayerPhotoURL,
			session.StartTime, session.EndTime, session.Score); err != nil {
			log.Error("failed to insert session: %v", err)
			return err
		}

		for _, a := range session.PuzzleAttempts {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO rush_attempts (session_id, puzzle_id, answered_at, correct, response_time, score_awarded, attempt_number, used_hint)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, session.ID, a.PuzzleID, a.AnsweredAt, boolToInt(a.Correct), a.ResponseTime,
				a.ScoreAwarded, a.AttemptNumber, boolToInt(a.UsedHint)); err != nil {
				log.Error("failed to insert attempt: %v", err)
				return err
			}
		}
		return nil
	})
}

func (r *rushRepository) GetSession(ctx context.Context, id string) (*models.TimeAttackSession, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("getting session: id=%s", id)

	var s models.TimeAttackSession
	err := r.db.QueryRowContext(ctx, `
SELECT id, player_id, player_name, player_photo_url, start_time, end_time, score
FROM rush_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.PlayerID, &s.PlayerName, &s.PlayerPhotoURL, &s.StartTime, &s.EndTime, &s.Score)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}

	attempts, err := r.loadAttempts(ctx, id)
	if err != nil {
		return nil, err
	}
	s.PuzzleAttempts = attempts
	return &s, nil
}

func (r *rushRepository) loadAttempts(ctx context.Context, sessionID string) ([]models.PuzzleAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT puzzle_id, answered_at, correct, response_time, score_awarded, attempt_number, used_hint
FROM rush_attempts
WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		log.Error("failed to load attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.PuzzleAttempt
	for rows.Next() {
		var a models.PuzzleAttempt
		var correct, usedHint int
		if err := rows.Scan(&a.PuzzleID, &a.AnsweredAt, &correct, &a.ResponseTime, &a.ScoreAwarded, &a.AttemptNumber, &usedHint); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		a.Correct = correct != 0
		a.UsedHint = usedHint != 0
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *rushRepository) TopSessions(ctx context.Context, limit int) ([]models.TimeAttackSession, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("listing top sessions: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}

	sqlStr, args, err := sqlBuilder.Select(
		"id", "player_id", "player_name", "player_photo_url", "start_time", "end_time", "score",
	).From("rush_sessions").
		OrderBy("score DESC", "end_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list top sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.TimeAttackSession
	for rows.Next() {
		var s models.TimeAttackSession
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.PlayerName, &s.PlayerPhotoURL, &s.StartTime, &s.EndTime, &s.Score); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Leaderboard rows derive their solved count from the attempts.
	for i := range sessions {
		attempts, err := r.loadAttempts(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].PuzzleAttempts = attempts
	}

	log.Debug("found %d top sessions", len(sessions))
	return sessions, nil
}

func (r *rushRepository) GetStats(ctx context.Context, uid string) (*models.TimeAttackStats, error) {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("getting rush stats: uid=%s", uid)

	var s models.TimeAttackStats
	err := r.db.QueryRowContext(ctx, `
SELECT total_games, best_score, average_score, total_puzzles_solved, average_response_time, last_played
FROM rush_stats
WHERE player_uid = ?
`, uid).Scan(&s.TotalGames, &s.BestScore, &s.AverageScore, &s.TotalPuzzlesSolved, &s.AverageResponseTime, &s.LastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no rush stats for uid=%s", uid)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get rush stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *rushRepository) SaveStats(ctx context.Context, uid string, stats models.TimeAttackStats) error {
	log := logger.FromContext(ctx).WithPrefix("rush_repo")
	log.Debug("saving rush stats: uid=%s, games=%d, best=%d", uid, stats.TotalGames, stats.BestScore)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO rush_stats (player_uid, total_games, best_score, average_score, total_puzzles_solved, average_response_time, last_played)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_uid) DO UPDATE SET
    total_games = excluded.total_games,
    best_score = excluded.best_score,
    average_score = excluded.average_score,
    total_puzzles_solved = excluded.total_puzzles_solved,
    average_response_time = excluded.average_response_time,
    last_played = excluded.last_played
`, uid, stats.TotalGames, stats.BestScore, stats.AverageScore, stats.TotalPuzzlesSolved,
		stats.AverageResponseTime, stats.LastPlayed)
	if err != nil {
		log.Error("failed to save rush stats: %v", err)
	}
	return err
}
