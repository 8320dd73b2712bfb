package models

// DailyGame is the authoritative state of one player's attempt at one day's
// puzzle. It mirrors the browser-local cache keys (currentGame, lastPlayed,
// currentPuzzleId) so clients can keep a best-effort offline copy.
type DailyGame struct {
	PlayerUID       string   `json:"-"`
	Date            string   `json:"lastPlayed"` // YYYY-MM-DD
	PuzzleID        string   `json:"currentPuzzleId"`
	Attempts        []string `json:"attempts"`
	ShowHint        bool     `json:"showHint"`
	ShowPatternHint bool     `json:"showPatternHint"`
	GameOver        bool     `json:"gameOver"`
	Won             bool     `json:"won"`
	Score           int      `json:"score"`
}
