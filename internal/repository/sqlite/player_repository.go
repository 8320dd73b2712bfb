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

type playerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new PlayerRepository implementation
func NewPlayerRepository(db *sql.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Get(ctx context.Context, uid string) (*models.PlayerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("getting player: uid=%s", uid)

	var p models.PlayerStats
	err := r.db.QueryRowContext(ctx, `
SELECT uid, name, email, photo_url, total_games, total_wins, total_score,
       current_streak, max_streak, last_played
FROM players
WHERE uid = ?
`, uid).Scan(&p.UID, &p.Name, &p.Email, &p.PhotoURL, &p.TotalGames, &p.TotalWins,
		&p.TotalScore, &p.CurrentStreak, &p.MaxStreak, &p.LastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("player not found: uid=%s", uid)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, err
	}

	history, err := r.loadHistory(ctx, uid)
	if err != nil {
		return nil, err
	}
	p.History = history
	return &p, nil
}

func (r *playerRepository) loadHistory(ctx context.Context, uid string) ([]models.DailyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT date, attempts, used_hint, used_pattern_hint, won, score, attempt_values
FROM daily_history
WHERE player_uid = ?
ORDER BY date ASC
`, uid)
	if err != nil {
		log.Error("failed to load history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var history []models.DailyStats
	for rows.Next() {
		var d models.DailyStats
		var usedHint, usedPattern, won int
		var attemptValues string
		if err := rows.Scan(&d.Date, &d.Attempts, &usedHint, &usedPattern, &won, &d.Score, &attemptValues); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		d.UsedHint = usedHint != 0
		d.UsedPatternHint = usedPattern != 0
		d.Won = won != 0
		if err := json.Unmarshal([]byte(attemptValues), &d.AttemptValues); err != nil {
			log.Warn("malformed attempt values for %s/%s: %v", uid, d.Date, err)
		}
		history = append(history, d)
	}
	return history, rows.Err()
}

func (r *playerRepository) Init(ctx context.Context, uid, name, email, photoURL string) (*models.PlayerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("initializing player profile: uid=%s", uid)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (uid, name, email, photo_url)
VALUES (?, ?, ?, ?)
ON CONFLICT(uid) DO UPDATE SET name = excluded.name, email = excluded.email, photo_url = excluded.photo_url
`, uid, name, email, photoURL)
	if err != nil {
		log.Error("failed to init player profile: %v", err)
		return nil, err
	}
	return r.Get(ctx, uid)
}

// Save writes the whole player document: aggregate counters plus the full
// history list, replacing the stored history rows. Mirrors a document-store
// set with merge semantics.
func (r *playerRepository) Save(ctx context.Context, stats models.PlayerStats) error {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("saving player stats: uid=%s, games=%d", stats.UID, stats.TotalGames)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO players (uid, name, email, photo_url, total_games, total_wins, total_score,
                     current_streak, max_streak, last_played)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(uid) DO UPDATE SET
    name = excluded.name,
    email = excluded.email,
    photo_url = excluded.photo_url,
    total_games = excluded.total_games,
    total_wins = excluded.total_wins,
    total_score = excluded.total_score,
    current_streak = excluded.current_streak,
    max_streak = excluded.max_streak,
    last_played = excluded.last_played
`, stats.UID, stats.Name, stats.Email, stats.PhotoURL, stats.TotalGames, stats.TotalWins,
			stats.TotalScore, stats.CurrentStreak, stats.MaxStreak, stats.LastPlayed); err != nil {
			log.Error("failed to upsert player row: %v", err)
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_history WHERE player_uid = ?`, stats.UID); err != nil {
			log.Error("failed to clear history for %s: %v", stats.UID, err)
			return err
		}

		for _, d := range stats.History {
			attemptValues, err := json.Marshal(d.AttemptValues)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO daily_history (player_uid, date, attempts, used_hint, used_pattern_hint, won, score, attempt_values)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, stats.UID, d.Date, d.Attempts, boolToInt(d.UsedHint), boolToInt(d.UsedPatternHint),
				boolToInt(d.Won), d.Score, string(attemptValues)); err != nil {
				log.Error("failed to insert history row %s/%s: %v", stats.UID, d.Date, err)
				return err
			}
		}
		return nil
	})
}

func (r *playerRepository) List(ctx context.Context) ([]models.PlayerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("listing players")

	rows, err := r.db.QueryContext(ctx, `
SELECT uid, name, email, photo_url, total_games, total_wins, total_score,
       current_streak, max_streak, last_played
FROM players
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list players: %v", err)
		return nil, err
	}
	defer rows.Close()

	var players []models.PlayerStats
	for rows.Next() {
		var p models.PlayerStats
		if err := rows.Scan(&p.UID, &p.Name, &p.Email, &p.PhotoURL, &p.TotalGames, &p.TotalWins,
			&p.TotalScore, &p.CurrentStreak, &p.MaxStreak, &p.LastPlayed); err != nil {
			log.Error("failed to scan player row: %v", err)
			return nil, err
		}
		players = append(players, p)
	}

	log.Debug("found %d players", len(players))
	return players, rows.Err()
}
