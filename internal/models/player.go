package models

// DailyStats is one finished daily game. Immutable once written; at most one
// entry per calendar date per player.
type DailyStats struct {
	Date            string   `json:"date"` // YYYY-MM-DD
	Attempts        int      `json:"attempts"`
	UsedHint        bool     `json:"usedHint"`
	UsedPatternHint bool     `json:"usedPatternHint"`
	Won             bool     `json:"won"`
	Score           int      `json:"score"`
	AttemptValues   []string `json:"attemptValues"`
}

// PlayerStats is the per-player record: profile info, cumulative counters and
// the per-day history.
type PlayerStats struct {
	UID           string       `json:"-"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	PhotoURL      string       `json:"photoURL"`
	TotalGames    int          `json:"totalGames"`
	TotalWins     int          `json:"totalWins"`
	TotalScore    int          `json:"totalScore"`
	CurrentStreak int          `json:"currentStreak"`
	MaxStreak     int          `json:"maxStreak"`
	LastPlayed    string       `json:"lastPlayed"` // YYYY-MM-DD, empty if never
	History       []DailyStats `json:"history"`
}

// HistoryEntry returns the history entry for the given date, or nil.
func (p *PlayerStats) HistoryEntry(date string) *DailyStats {
	for i := range p.History {
		if p.History[i].Date == date {
			return &p.History[i]
		}
	}
	return nil
}

// WinRate returns the rounded win percentage.
func (p *PlayerStats) WinRate() int {
	if p.TotalGames == 0 {
		return 0
	}
	return int(float64(p.TotalWins)/float64(p.TotalGames)*100 + 0.5)
}

// LeaderboardPlayer is a derived ranking row for the aggregate leaderboard.
type LeaderboardPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
	Score    int    `json:"score"`
	WinRate  int    `json:"winRate"`
	Streak   int    `json:"streak"`
}
