package kpi

import (
	"time"

	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type CreateTemplateRequest struct {
	Name string        `json:"name"`
	Rows []TemplateRow `json:"rows"`
}

func (r CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Template name is required"})
	}
	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{Field: "rows", Message: "At least one row is required"})
	}
	for _, row := range r.Rows {
		if validator.IsEmpty(row.RowID) || validator.IsEmpty(row.Label) {
			errs = append(errs, validator.ValidationError{Field: "rows", Message: "Every row needs a row_id and a label"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateSheetRequest struct {
	Year        int         `json:"year"`
	Month       int         `json:"month"`
	TemplateID  string      `json:"templateId"`
	Signatories Signatories `json:"signatories"`
	Overwrite   bool        `json:"overwrite,omitempty"`
}

func (r GenerateSheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "Invalid year"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "Invalid month"})
	}
	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{Field: "templateId", Message: "Template is required"})
	}
	if validator.IsEmpty(r.Signatories.CheckedBy) ||
		validator.IsEmpty(r.Signatories.VerifiedBy) ||
		validator.IsEmpty(r.Signatories.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "signatories", Message: "All three signatories are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryRequest struct {
	SheetID string   `json:"sheetId"`
	RowID   string   `json:"rowId"`
	Day     int      `json:"day"`
	Value   *float64 `json:"value"`
}

func (r EntryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SheetID) {
		errs = append(errs, validator.ValidationError{Field: "sheetId", Message: "Sheet is required"})
	}
	if validator.IsEmpty(r.RowID) {
		errs = append(errs, validator.ValidationError{Field: "rowId", Message: "Row is required"})
	}
	if r.Day < 1 || r.Day > 31 {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "Day must be between 1 and 31"})
	}
	if r.Value == nil {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "Value is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayStatusRequest toggles a day classification. The wire names follow the
// legacy client: type "leave" marks a holiday.
type DayStatusRequest struct {
	SheetID string `json:"sheetId"`
	Day     int    `json:"day"`
	Type    string `json:"type"`
}

func (r DayStatusRequest) Class() (DayClass, bool) {
	switch r.Type {
	case "leave":
		return DayClassHoliday, true
	case "festival":
		return DayClassFestival, true
	case "half_day":
		return DayClassHalfDay, true
	default:
		return DayClassNone, false
	}
}

func (r DayStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SheetID) {
		errs = append(errs, validator.ValidationError{Field: "sheetId", Message: "Sheet is required"})
	}
	if r.Day < 1 || r.Day > 31 {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "Day must be between 1 and 31"})
	}
	if _, ok := r.Class(); !ok {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "Type must be leave, festival or half_day"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddRowRequest struct {
	SheetID string  `json:"sheetId"`
	Label   string  `json:"label"`
	Type    RowType `json:"type"`
}

func (r AddRowRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SheetID) {
		errs = append(errs, validator.ValidationError{Field: "sheetId", Message: "Sheet is required"})
	}
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "Label is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitRequest struct {
	SheetID string  `json:"sheetId"`
	Summary Summary `json:"summary"`
}

func (r SubmitRequest) Validate() error {
	if validator.IsEmpty(r.SheetID) {
		return validator.ValidationErrors{{Field: "sheetId", Message: "Sheet is required"}}
	}
	return nil
}

type ReviewRequest struct {
	SheetID  string       `json:"sheetId"`
	Action   ReviewAction `json:"action"`
	Comments string       `json:"comments"`
}

func (r ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.SheetID) {
		errs = append(errs, validator.ValidationError{Field: "sheetId", Message: "Sheet is required"})
	}
	switch r.Action {
	case ActionCheck, ActionVerify, ActionApprove, ActionReject:
	default:
		errs = append(errs, validator.ValidationError{Field: "action", Message: "Action must be CHECK, VERIFY, APPROVE or REJECT"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RowResponse is a grid row with its derived total.
type RowResponse struct {
	Row
	Total float64 `json:"total"`
}

// SheetResponse is the full sheet with all derived figures the client grid
// renders: per-row totals, per-day column totals, grand total and the lock
// state at response time.
type SheetResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	OwnerName    *string         `json:"owner_name,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Status       SheetStatus     `json:"status"`
	Rows         []RowResponse   `json:"rows"`
	Holidays     []int           `json:"holidays"`
	Festivals    []int           `json:"festivals"`
	HalfDays     []int           `json:"half_days"`
	Summary      Summary         `json:"summary"`
	Signatories  Signatories     `json:"assigned_signatories"`
	History      []ApprovalEntry `json:"approval_history"`
	ColumnTotals map[int]float64 `json:"column_totals"`
	GrandTotal   float64         `json:"grand_total"`
	DaysInMonth  int             `json:"days_in_month"`
	Locked       bool            `json:"locked"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToResponse derives the read model from the aggregate.
func (s *Sheet) ToResponse(now time.Time) SheetResponse {
	days := DaysIn(s.Year, s.Month)
	rows := make([]RowResponse, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, RowResponse{Row: row, Total: s.RowTotal(row)})
	}
	columns := make(map[int]float64, days)
	for day := 1; day <= days; day++ {
		columns[day] = s.ColumnTotal(day)
	}

	holidays := s.Marks.Holidays
	if holidays == nil {
		holidays = []int{}
	}
	festivals := s.Marks.Festivals
	if festivals == nil {
		festivals = []int{}
	}
	halfDays := s.Marks.HalfDays
	if halfDays == nil {
		halfDays = []int{}
	}
	history := s.History
	if history == nil {
		history = []ApprovalEntry{}
	}

	return SheetResponse{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		OwnerName:    s.OwnerName,
		Year:         s.Year,
		Month:        s.Month,
		Status:       s.Status,
		Rows:         rows,
		Holidays:     holidays,
		Festivals:    festivals,
		HalfDays:     halfDays,
		Summary:      s.Summary,
		Signatories:  s.Signatories,
		History:      history,
		ColumnTotals: columns,
		GrandTotal:   s.GrandTotal(),
		DaysInMonth:  days,
		Locked:       !s.EditableOn(now),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// SheetListItem is the compact listing row for sheet overviews.
type SheetListItem struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	OwnerName *string     `json:"owner_name,omitempty"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	Status    SheetStatus `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AdminStats aggregates sheet counts for the admin dashboard.
type AdminStats struct {
	TotalSheets    int64                 `json:"total_sheets"`
	ByStatus       map[SheetStatus]int64 `json:"by_status"`
	PendingReviews int64                 `json:"pending_reviews"`
}
