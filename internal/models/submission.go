package models

import "time"

// Submission statuses
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission is a user-submitted puzzle awaiting moderation.
type Submission struct {
	ID          string    `json:"id"`
	Emoji       string    `json:"emoji"`
	Answer      string    `json:"answer"`
	Hint        string    `json:"hint"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
