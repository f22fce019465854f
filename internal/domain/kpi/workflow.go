package kpi

import (
	"fmt"
	"strings"
	"time"
)

// transitions is the full approval state machine. Anything not listed is
// rejected. APPROVED is terminal; REJECTED reopens editing and resubmission.
var transitions = map[SheetStatus]map[ReviewAction]SheetStatus{
	StatusSubmitted: {
		ActionCheck:  StatusChecked,
		ActionReject: StatusRejected,
	},
	StatusChecked: {
		ActionVerify: StatusVerified,
		ActionReject: StatusRejected,
	},
	StatusVerified: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

// NextStatus resolves a review action against the transition table.
func NextStatus(from SheetStatus, action ReviewAction) (SheetStatus, error) {
	next, ok := transitions[from][action]
	if !ok {
		return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
	}
	return next, nil
}

// StageSignatory returns the identity whose turn it is to act on the sheet.
func (s *Sheet) StageSignatory() (string, bool) {
	switch s.Status {
	case StatusSubmitted:
		return s.Signatories.CheckedBy, true
	case StatusChecked:
		return s.Signatories.VerifiedBy, true
	case StatusVerified:
		return s.Signatories.ApprovedBy, true
	default:
		return "", false
	}
}

// Reviewer identifies who is performing a review action. Admins may act in
// place of any assigned signatory.
type Reviewer struct {
	ID      string
	Name    string
	IsAdmin bool
}

// ApplyReview advances the sheet through one review action: transition-table
// check, signatory capability check, comments-required-on-reject, then the
// status change and exactly one appended history entry.
func (s *Sheet) ApplyReview(action ReviewAction, reviewer Reviewer, comments string, now time.Time) error {
	next, err := NextStatus(s.Status, action)
	if err != nil {
		return err
	}

	signatory, _ := s.StageSignatory()
	if !reviewer.IsAdmin && reviewer.ID != signatory {
		return ErrNotSignatory
	}

	if action == ActionReject && strings.TrimSpace(comments) == "" {
		return ErrCommentsRequired
	}

	s.Status = next
	s.History = append(s.History, ApprovalEntry{
		Action:   action,
		By:       reviewer.ID,
		ByName:   reviewer.Name,
		Date:     now,
		Comments: comments,
	})
	return nil
}

// requiredSummaryField pairs a field name with its presence check. The
// literal 0 is a valid numeric entry; only nil / empty string is missing.
type requiredSummaryField struct {
	name    string
	present bool
}

func (sum Summary) requiredFields() []requiredSummaryField {
	presentStr := func(s *string) bool { return s != nil && strings.TrimSpace(*s) != "" }
	presentNum := func(f *float64) bool { return f != nil }
	return []requiredSummaryField{
		{"business_loss", presentNum(sum.BusinessLoss)},
		{"root_cause", presentStr(sum.RootCause)},
		{"action_plan", presentStr(sum.ActionPlan)},
		{"overall_percentage", presentNum(sum.OverallPercentage)},
		{"blockers", presentStr(sum.Blockers)},
		{"blockers_root_cause", presentStr(sum.BlockersRootCause)},
		{"can_hod_solve", presentStr(sum.CanHODSolve)},
		{"total_workload_percentage", presentNum(sum.TotalWorkloadPercentage)},
	}
}

// MissingFields lists required summary fields that are absent or empty.
func (sum Summary) MissingFields() []string {
	var missing []string
	for _, f := range sum.requiredFields() {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if sum.CanHODSolve != nil {
		v := strings.TrimSpace(*sum.CanHODSolve)
		if v != "" && v != "Yes" && v != "No" {
			missing = append(missing, "can_hod_solve")
		}
	}
	return missing
}

// Submit moves a DRAFT or REJECTED sheet to SUBMITTED. All eight summary
// fields must be present (zero values allowed); the submission date is
// stamped and no approval-history entry is written.
func (s *Sheet) Submit(sum Summary, ownerID string, now time.Time) error {
	if s.OwnerID != ownerID {
		return ErrNotSheetOwner
	}
	if !s.Status.Editable() {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, s.Status)
	}
	if missing := sum.MissingFields(); len(missing) > 0 {
		return &SummaryValidationError{Missing: missing}
	}

	sum.SubmissionDate = &now
	s.Summary = sum
	s.Status = StatusSubmitted
	return nil
}

// SummaryValidationError reports which required summary fields are missing.
type SummaryValidationError struct {
	Missing []string
}

func (e *SummaryValidationError) Error() string {
	return "missing required summary fields: " + strings.Join(e.Missing, ", ")
}

// SetEntry records one daily value. Checkbox rows accept only 0 or 1;
// numeric rows any non-negative value.
func (s *Sheet) SetEntry(rowID string, day int, value float64, now time.Time) error {
	if !s.EditableOn(now) {
		return ErrSheetLocked
	}
	if day < 1 || day > DaysIn(s.Year, s.Month) {
		return ErrInvalidDay
	}
	if value < 0 {
		return ErrInvalidRowValue
	}

	for i := range s.Rows {
		if s.Rows[i].RowID != rowID {
			continue
		}
		if s.Rows[i].Type == RowTypeCheckbox && value != 0 && value != 1 {
			return ErrInvalidRowValue
		}
		if s.Rows[i].DailyValues == nil {
			s.Rows[i].DailyValues = DailyValues{}
		}
		s.Rows[i].DailyValues[day] = value
		return nil
	}
	return ErrRowNotFound
}

// ToggleDay flips a day's classification. Gated by the whole-sheet lock
// only; there is no per-day gate.
func (s *Sheet) ToggleDay(day int, class DayClass, now time.Time) error {
	if !s.EditableOn(now) {
		return ErrSheetLocked
	}
	if day < 1 || day > DaysIn(s.Year, s.Month) {
		return ErrInvalidDay
	}
	switch class {
	case DayClassHoliday, DayClassFestival, DayClassHalfDay:
	default:
		return ErrInvalidDayType
	}
	s.Marks.Toggle(day, class)
	return nil
}

// AddCustomRow appends a user-defined row with a generated key.
func (s *Sheet) AddCustomRow(label string, rowType RowType, now time.Time) (Row, error) {
	if !s.EditableOn(now) {
		return Row{}, ErrSheetLocked
	}
	if rowType != RowTypeNumeric && rowType != RowTypeCheckbox {
		rowType = RowTypeNumeric
	}
	row := Row{
		RowID:       fmt.Sprintf("custom_%d", now.UnixMilli()),
		Label:       label,
		Type:        rowType,
		DailyValues: DailyValues{},
		IsCustom:    true,
		Position:    len(s.Rows),
	}
	s.Rows = append(s.Rows, row)
	return row, nil
}

// RemoveRow hard-deletes a custom row. Template rows stay.
func (s *Sheet) RemoveRow(rowID string, now time.Time) error {
	if !s.EditableOn(now) {
		return ErrSheetLocked
	}
	for i := range s.Rows {
		if s.Rows[i].RowID != rowID {
			continue
		}
		if !s.Rows[i].IsCustom {
			return ErrRowNotCustom
		}
		s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
		return nil
	}
	return ErrRowNotFound
}

// NewSheetFromTemplate instantiates the monthly grid from a template.
func NewSheetFromTemplate(ownerID string, year, month int, tpl Template, signatories Signatories) Sheet {
	rows := make([]Row, 0, len(tpl.Rows))
	for i, tr := range tpl.Rows {
		rows = append(rows, Row{
			RowID:       tr.RowID,
			Label:       tr.Label,
			Type:        tr.Type,
			DailyValues: DailyValues{},
			Position:    i,
		})
	}
	return Sheet{
		OwnerID:     ownerID,
		TemplateID:  &tpl.ID,
		Year:        year,
		Month:       month,
		Status:      StatusDraft,
		Rows:        rows,
		Signatories: signatories,
	}
}
