package audit

import "time"

type EntryResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Module    string    `json:"module"`
	Action    string    `json:"action"`
	JobNo     *string   `json:"job_no,omitempty"`
	Year      *string   `json:"year,omitempty"`
	Details   *string   `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse is the paged audit-trail listing.
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

func (e Entry) ToResponse() EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Username:  e.Username,
		Module:    e.Module,
		Action:    e.Action,
		JobNo:     e.JobNo,
		Year:      e.Year,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}
