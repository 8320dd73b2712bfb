package models

import "time"

// PuzzleAttempt is one submitted guess inside a time-attack session.
// Immutable once appended.
type PuzzleAttempt struct {
	PuzzleID      string    `json:"puzzleId"`
	AnsweredAt    time.Time `json:"answeredAt"`
	Correct       bool      `json:"correct"`
	ResponseTime  float64   `json:"responseTime"` // seconds
	ScoreAwarded  int       `json:"scoreAwarded"`
	AttemptNumber int       `json:"attemptNumber"`
	UsedHint      bool      `json:"usedHint"`
}

// TimeAttackSession is one timed play-through covering multiple puzzles.
type TimeAttackSession struct {
	ID             string          `json:"id"`
	PlayerID       string          `json:"playerId"`
	PlayerName     string          `json:"playerName"`
	PlayerPhotoURL string          `json:"playerPhotoURL,omitempty"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	Score          int             `json:"score"`
	PuzzleAttempts []PuzzleAttempt `json:"puzzleAttempts"`
}

// TimeAttackStats is the per-player aggregate over all time-attack sessions,
// maintained by read-modify-write on session save.
type TimeAttackStats struct {
	TotalGames          int       `json:"totalGames"`
	BestScore           int       `json:"bestScore"`
	AverageScore        float64   `json:"averageScore"`
	TotalPuzzlesSolved  int       `json:"totalPuzzlesSolved"`
	AverageResponseTime float64   `json:"averageResponseTime"`
	LastPlayed          time.Time `json:"lastPlayed"`
}
