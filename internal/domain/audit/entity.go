package audit

import "time"

// Entry is one audit-trail record. The write side for most modules lives in
// the upstream job system; this service only appends KPI review events and
// serves the viewer.
type Entry struct {
	ID       string
	Username string
	Module   string
	Action   string
	JobNo    *string
	Year     *string
	Details  *string

	CreatedAt time.Time
}

// Filter narrows the audit-trail listing.
type Filter struct {
	Username string
	Module   string
	Action   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// Stats is the viewer's aggregate panel.
type Stats struct {
	Total    int64            `json:"total"`
	ByAction map[string]int64 `json:"by_action"`
	ByModule map[string]int64 `json:"by_module"`
	ByDay    map[string]int64 `json:"by_day"`
}
