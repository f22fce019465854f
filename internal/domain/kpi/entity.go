package kpi

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type SheetStatus string

const (
	StatusDraft     SheetStatus = "DRAFT"
	StatusSubmitted SheetStatus = "SUBMITTED"
	StatusChecked   SheetStatus = "CHECKED"
	StatusVerified  SheetStatus = "VERIFIED"
	StatusApproved  SheetStatus = "APPROVED"
	StatusRejected  SheetStatus = "REJECTED"
)

// Editable reports whether sheet contents may still be modified in this
// status. The deadline lock is checked separately, see Sheet.EditableOn.
func (s SheetStatus) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

type ReviewAction string

const (
	ActionCheck   ReviewAction = "CHECK"
	ActionVerify  ReviewAction = "VERIFY"
	ActionApprove ReviewAction = "APPROVE"
	ActionReject  ReviewAction = "REJECT"
)

type RowType string

const (
	RowTypeNumeric  RowType = "numeric"
	RowTypeCheckbox RowType = "checkbox"
)

// DailyValues maps day-of-month to the entered value. Absent day means no
// entry and counts as 0 in totals. Checkbox rows store 0 or 1.
type DailyValues map[int]float64

// Value implements driver.Valuer for JSONB storage
func (d DailyValues) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(DailyValues{})
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *DailyValues) Scan(value interface{}) error {
	if value == nil {
		*d = DailyValues{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan DailyValues: invalid type")
	}
	return json.Unmarshal(bytes, d)
}

// Row is one KPI line in the monthly grid. Template rows carry a stable
// template key; user-added rows get a generated custom_<epoch-ms> key and
// may be removed again while the sheet is editable.
type Row struct {
	RowID       string      `json:"row_id"`
	Label       string      `json:"label"`
	Type        RowType     `json:"type"`
	DailyValues DailyValues `json:"daily_values"`
	IsCustom    bool        `json:"is_custom"`
	Position    int         `json:"position"`
}

// DayMarks holds the three stored day-classification sets. A day number
// appears in at most one of them; Toggle maintains that invariant.
type DayMarks struct {
	Holidays  []int `json:"holidays"`
	Festivals []int `json:"festivals"`
	HalfDays  []int `json:"half_days"`
}

// Value implements driver.Valuer for JSONB storage
func (m DayMarks) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval
func (m *DayMarks) Scan(value interface{}) error {
	if value == nil {
		*m = DayMarks{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan DayMarks: invalid type")
	}
	return json.Unmarshal(bytes, m)
}

// Summary carries the sheet-level closing fields. All eight business fields
// are required before submission; a numeric 0 is a valid entry, which is why
// the numeric fields are pointers (nil = never filled in).
type Summary struct {
	BusinessLoss            *float64   `json:"business_loss"`
	RootCause               *string    `json:"root_cause"`
	ActionPlan              *string    `json:"action_plan"`
	OverallPercentage       *float64   `json:"overall_percentage"`
	Blockers                *string    `json:"blockers"`
	BlockersRootCause       *string    `json:"blockers_root_cause"`
	CanHODSolve             *string    `json:"can_hod_solve"`
	TotalWorkloadPercentage *float64   `json:"total_workload_percentage"`
	SubmissionDate          *time.Time `json:"submission_date,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (s Summary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *Summary) Scan(value interface{}) error {
	if value == nil {
		*s = Summary{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Summary: invalid type")
	}
	return json.Unmarshal(bytes, s)
}

// Signatories are assigned at sheet generation and immutable afterwards.
type Signatories struct {
	CheckedBy  string `json:"checked_by"`
	VerifiedBy string `json:"verified_by"`
	ApprovedBy string `json:"approved_by"`
}

// ApprovalEntry is one append-only history record. Submission does not
// produce an entry; only reviewer actions do.
type ApprovalEntry struct {
	Action   ReviewAction `json:"action"`
	By       string       `json:"by"`
	ByName   string       `json:"by_name"`
	Date     time.Time    `json:"date"`
	Comments string       `json:"comments"`
}

// Sheet is the monthly KPI aggregate: grid rows, day classification,
// closing summary and the approval chain.
type Sheet struct {
	ID          string
	OwnerID     string
	TemplateID  *string
	Year        int
	Month       int
	Status      SheetStatus
	Rows        []Row
	Marks       DayMarks
	Summary     Summary
	Signatories Signatories
	History     []ApprovalEntry

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	OwnerName *string
}

// TemplateRow is a row definition inside a template.
type TemplateRow struct {
	RowID string  `json:"row_id"`
	Label string  `json:"label"`
	Type  RowType `json:"type"`
}

type TemplateRows []TemplateRow

// Value implements driver.Valuer for JSONB storage
func (t TemplateRows) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(TemplateRows{})
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB retrieval
func (t *TemplateRows) Scan(value interface{}) error {
	if value == nil {
		*t = TemplateRows{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TemplateRows: invalid type")
	}
	return json.Unmarshal(bytes, t)
}

// Template is a reusable sheet blueprint.
type Template struct {
	ID        string
	Name      string
	Rows      TemplateRows
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
