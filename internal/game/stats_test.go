package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiomoji/server/internal/game"
	"github.com/idiomoji/server/internal/models"
)

func dailyWin(date string, score int) models.DailyStats {
	return models.DailyStats{
		Date:          date,
		Attempts:      2,
		Won:           true,
		Score:         score,
		AttemptValues: []string{"cat", "elephant in the room"},
	}
}

func TestApplyDailyResult_FirstGame(t *testing.T) {
	stats := models.PlayerStats{Name: "Anonymous"}

	applied := game.ApplyDailyResult(&stats, dailyWin("2026-08-28", 75))

	require.True(t, applied)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.TotalWins)
	assert.Equal(t, 75, stats.TotalScore)
	assert.Equal(t, 1, stats.CurrentStreak, "first ever win starts a streak")
	assert.Equal(t, 1, stats.MaxStreak)
	assert.Equal(t, "2026-08-28", stats.LastPlayed)
	assert.Len(t, stats.History, 1)
}

func TestApplyDailyResult_ConsecutiveWinExtendsStreak(t *testing.T) {
	stats := models.PlayerStats{
		TotalGames:    3,
		TotalWins:     3,
		CurrentStreak: 3,
		MaxStreak:     3,
		LastPlayed:    "2026-08-27",
	}

	applied := game.ApplyDailyResult(&stats, dailyWin("2026-08-28", 100))

	require.True(t, applied)
	assert.Equal(t, 4, stats.CurrentStreak, "lastPlayed is exactly yesterday")
	assert.Equal(t, 4, stats.MaxStreak)
}

func TestApplyDailyResult_GapResetsStreakToOne(t *testing.T) {
	stats := models.PlayerStats{
		CurrentStreak: 5,
		MaxStreak:     5,
		LastPlayed:    "2026-08-25", // three days before
	}

	applied := game.ApplyDailyResult(&stats, dailyWin("2026-08-28", 50))

	require.True(t, applied)
	assert.Equal(t, 1, stats.CurrentStreak, "non-consecutive win restarts at 1")
	assert.Equal(t, 5, stats.MaxStreak, "max streak is preserved")
}

func TestApplyDailyResult_LossResetsStreakToZero(t *testing.T) {
	stats := models.PlayerStats{
		CurrentStreak: 2,
		MaxStreak:     2,
		LastPlayed:    "2026-08-27",
	}

	loss := models.DailyStats{Date: "2026-08-28", Attempts: 5, Won: false, Score: 0}
	applied := game.ApplyDailyResult(&stats, loss)

	require.True(t, applied)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 0, stats.TotalWins)
}

func TestApplyDailyResult_DuplicateDateIsNoOp(t *testing.T) {
	stats := models.PlayerStats{}
	require.True(t, game.ApplyDailyResult(&stats, dailyWin("2026-08-28", 75)))

	// Double-click: same date again must change nothing.
	applied := game.ApplyDailyResult(&stats, dailyWin("2026-08-28", 75))

	assert.False(t, applied)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 75, stats.TotalScore)
	assert.Len(t, stats.History, 1)
}

func TestWinRate(t *testing.T) {
	stats := models.PlayerStats{TotalGames: 3, TotalWins: 2}
	assert.Equal(t, 67, stats.WinRate())

	empty := models.PlayerStats{}
	assert.Equal(t, 0, empty.WinRate())
}
