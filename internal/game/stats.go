package game

import (
	"time"

	"github.com/idiomoji/server/internal/models"
)

// DateFormat is the calendar-date key used throughout: puzzle ids, history
// entries and the lastPlayed marker.
const DateFormat = "2006-01-02"

// Today returns the current date key.
func Today() string {
	return time.Now().UTC().Format(DateFormat)
}

// ApplyDailyResult folds one finished daily game into the player's cumulative
// stats. Returns false without modifying anything when the history already has
// an entry for that date, so a double submission is a no-op.
//
// Streak rules: a win extends the streak only when the previous played date is
// exactly yesterday (or the player never played); a non-consecutive win resets
// it to 1; a loss resets it to 0.
func ApplyDailyResult(stats *models.PlayerStats, result models.DailyStats) bool {
	if stats.HistoryEntry(result.Date) != nil {
		return false
	}

	stats.TotalGames++
	if result.Won {
		stats.TotalWins++
		if stats.LastPlayed == "" || stats.LastPlayed == yesterdayOf(result.Date) {
			stats.CurrentStreak++
		} else {
			stats.CurrentStreak = 1
		}
		if stats.CurrentStreak > stats.MaxStreak {
			stats.MaxStreak = stats.CurrentStreak
		}
	} else {
		stats.CurrentStreak = 0
	}
	stats.TotalScore += result.Score
	stats.LastPlayed = result.Date
	stats.History = append(stats.History, result)
	return true
}

// ApplyRushResult folds one completed time-attack session into the player's
// aggregate stats. Running averages are recomputed from the previous totals,
// not stored per session.
func ApplyRushResult(stats models.TimeAttackStats, session models.TimeAttackSession) models.TimeAttackStats {
	solved := 0
	var responseTotal float64
	for _, a := range session.PuzzleAttempts {
		if a.Correct {
			solved++
			responseTotal += a.ResponseTime
		}
	}

	prevGames := float64(stats.TotalGames)
	prevSolved := float64(stats.TotalPuzzlesSolved)

	stats.AverageScore = (stats.AverageScore*prevGames + float64(session.Score)) / (prevGames + 1)
	if prevSolved+float64(solved) > 0 {
		stats.AverageResponseTime = (stats.AverageResponseTime*prevSolved + responseTotal) / (prevSolved + float64(solved))
	}
	stats.TotalGames++
	stats.TotalPuzzlesSolved += solved
	if session.Score > stats.BestScore {
		stats.BestScore = session.Score
	}
	stats.LastPlayed = session.EndTime
	return stats
}

func yesterdayOf(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateFormat)
}
