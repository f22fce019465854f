package feedback

import "time"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Feedback is a user-filed issue or suggestion, triaged by admins.
type Feedback struct {
	ID          string
	Username    string
	Module      string
	Description string
	Status      Status
	Response    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
