package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

type dailyGameRepository struct {
	db *sql.DB
}

// NewDailyGameRepository creates a new DailyGameRepository implementation
func NewDailyGameRepository(db *sql.DB) repository.DailyGameRepository {
	return &dailyGameRepository{db: db}
}

func (r *dailyGameRepository) Get(ctx context.Context, uid, date string) (*models.DailyGame, error) {
	log := logger.FromContext(ctx).WithPrefix("daily_game_repo")
	log.Debug("getting daily game: uid=%s, date=%s", uid, date)

	var dg models.DailyGame
	var attempts string
	var showHint, showPattern, gameOver, won int
	err := r.db.QueryRowContext(ctx, `
SELECT player_uid, date, puzzle_id, attempts, show_hint, show_pattern_hint, game_over, won, score
FROM daily_games
WHERE player_uid = ? AND date = ?
`, uid, date).Scan(&dg.PlayerUID, &dg.Date, &dg.PuzzleID, &attempts, &showHint, &showPattern, &gameOver, &won, &dg.Score)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no daily game for uid=%s, date=%s", uid, date)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get daily game: %v", err)
		return nil, err
	}

	dg.ShowHint = showHint != 0
	dg.ShowPatternHint = showPattern != 0
	dg.GameOver = gameOver != 0
	dg.Won = won != 0
	if err := json.Unmarshal([]byte(attempts), &dg.Attempts); err != nil {
		log.Warn("malformed attempts for %s/%s: %v", uid, date, err)
	}
	return &dg, nil
}

func (r *dailyGameRepository) Save(ctx context.Context, dg models.DailyGame) error {
	log := logger.FromContext(ctx).WithPrefix("daily_game_repo")
	log.Debug("saving daily game: uid=%s, date=%s, over=%t", dg.PlayerUID, dg.Date, dg.GameOver)

	attempts, err := json.Marshal(dg.Attempts)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO daily_games (player_uid, date, puzzle_id, attempts, show_hint, show_pattern_hint, game_over, won, score)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_uid, date) DO UPDATE SET
    puzzle_id = excluded.puzzle_id,
    attempts = excluded.attempts,
    show_hint = excluded.show_hint,
    show_pattern_hint = excluded.show_pattern_hint,
    game_over = excluded.game_over,
    won = excluded.won,
    score = excluded.score
`, dg.PlayerUID, dg.Date, dg.PuzzleID, string(attempts), boolToInt(dg.ShowHint),
		boolToInt(dg.ShowPatternHint), boolToInt(dg.GameOver), boolToInt(dg.Won), dg.Score)
	if err != nil {
		log.Error("failed to save daily game: %v", err)
	}
	return err
}
