package worker

import (
	"context"

	"github.com/idiomoji/server/internal/game"
	"github.com/idiomoji/server/internal/logger"
	"github.com/idiomoji/server/internal/models"
	"github.com/idiomoji/server/internal/repository"
)

// Publisher receives a notification when a leaderboard-affecting write lands.
type Publisher interface {
	LeaderboardChanged(kind string)
}

// SyncPlayerStatsJob persists a player-stats document after a finished daily
// round. Failures are logged and dropped; the round result already reached the
// player, so the write is best effort.
type SyncPlayerStatsJob struct {
	PlayerRepo repository.PlayerRepository
	Stats      models.PlayerStats
	Publisher  Publisher
}

func (j *SyncPlayerStatsJob) Name() string { return "sync_player_stats" }

func (j *SyncPlayerStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("uid", j.Stats.UID)

	if err := j.PlayerRepo.Save(ctx, j.Stats); err != nil {
		log.Error("failed to save player stats: %v", err)
		return err
	}

	log.Debug("player stats synced: games=%d streak=%d", j.Stats.TotalGames, j.Stats.CurrentStreak)
	if j.Publisher != nil {
		j.Publisher.LeaderboardChanged("daily")
	}
	return nil
}

// PersistRushSessionJob stores a completed time-attack session and folds it
// into the player's aggregate stats.
type PersistRushSessionJob struct {
	RushRepo  repository.RushRepository
	Session   models.TimeAttackSession
	Publisher Publisher
}

func (j *PersistRushSessionJob) Name() string { return "persist_rush_session" }

func (j *PersistRushSessionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"session_id": j.Session.ID,
		"uid":        j.Session.PlayerID,
	})

	if err := j.RushRepo.InsertSession(ctx, j.Session); err != nil {
		log.Error("failed to insert rush session: %v", err)
		return err
	}

	stats, err := j.RushRepo.GetStats(ctx, j.Session.PlayerID)
	if err != nil {
		log.Error("failed to load rush stats: %v", err)
		return err
	}
	if stats == nil {
		stats = &models.TimeAttackStats{}
	}

	updated := game.ApplyRushResult(*stats, j.Session)
	if err := j.RushRepo.SaveStats(ctx, j.Session.PlayerID, updated); err != nil {
		log.Error("failed to save rush stats: %v", err)
		return err
	}

	log.Debug("rush session persisted: score=%d games=%d", j.Session.Score, updated.TotalGames)
	if j.Publisher != nil {
		j.Publisher.LeaderboardChanged("timeattack")
	}
	return nil
}
