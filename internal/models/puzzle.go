package models

import "time"

// Puzzle is an emoji sequence plus its idiom answer, scheduled for exactly
// one calendar date. The document id doubles as the available date.
type Puzzle struct {
	ID            string    `json:"id"` // YYYY-MM-DD, one puzzle per day
	Emoji         string    `json:"emoji"`
	Answer        string    `json:"answer"`
	Hint          string    `json:"hint"`
	Approved      bool      `json:"approved"`
	SubmittedBy   string    `json:"submittedBy,omitempty"`
	AvailableDate string    `json:"availableDate"`
	CreatedAt     time.Time `json:"createdAt"`
}
