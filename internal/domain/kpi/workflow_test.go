package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func completeSummary() Summary {
	return Summary{
		BusinessLoss:            numPtr(0),
		RootCause:               strPtr("none"),
		ActionPlan:              strPtr("none"),
		OverallPercentage:       numPtr(0),
		Blockers:                strPtr("none"),
		BlockersRootCause:       strPtr("none"),
		CanHODSolve:             strPtr("No"),
		TotalWorkloadPercentage: numPtr(0),
	}
}

func TestNextStatusTable(t *testing.T) {
	valid := []struct {
		from   SheetStatus
		action ReviewAction
		to     SheetStatus
	}{
		{StatusSubmitted, ActionCheck, StatusChecked},
		{StatusSubmitted, ActionReject, StatusRejected},
		{StatusChecked, ActionVerify, StatusVerified},
		{StatusChecked, ActionReject, StatusRejected},
		{StatusVerified, ActionApprove, StatusApproved},
		{StatusVerified, ActionReject, StatusRejected},
	}
	for _, tc := range valid {
		next, err := NextStatus(tc.from, tc.action)
		require.NoError(t, err, "%s from %s", tc.action, tc.from)
		assert.Equal(t, tc.to, next)
	}

	invalid := []struct {
		from   SheetStatus
		action ReviewAction
	}{
		{StatusDraft, ActionApprove},
		{StatusDraft, ActionCheck},
		{StatusSubmitted, ActionVerify},
		{StatusSubmitted, ActionApprove},
		{StatusChecked, ActionCheck},
		{StatusChecked, ActionApprove},
		{StatusVerified, ActionCheck},
		{StatusApproved, ActionReject},
		{StatusRejected, ActionCheck},
	}
	for _, tc := range invalid {
		_, err := NextStatus(tc.from, tc.action)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", tc.action, tc.from)
	}
}

func TestApplyReviewSignatoryGate(t *testing.T) {
	s := testSheet(2025, 2)
	s.Status = StatusSubmitted
	now := time.Now()

	// Wrong identity is rejected even for a valid transition
	err := s.ApplyReview(ActionCheck, Reviewer{ID: "stranger"}, "", now)
	assert.ErrorIs(t, err, ErrNotSignatory)
	assert.Equal(t, StatusSubmitted, s.Status)
	assert.Empty(t, s.History)

	// The assigned checker passes
	require.NoError(t, s.ApplyReview(ActionCheck, Reviewer{ID: "checker", Name: "Checker"}, "ok", now))
	assert.Equal(t, StatusChecked, s.Status)
	require.Len(t, s.History, 1)
	assert.Equal(t, ActionCheck, s.History[0].Action)
	assert.Equal(t, "checker", s.History[0].By)
	assert.Equal(t, "ok", s.History[0].Comments)

	// Admin may act for the verifier
	require.NoError(t, s.ApplyReview(ActionVerify, Reviewer{ID: "someone-else", IsAdmin: true}, "", now))
	assert.Equal(t, StatusVerified, s.Status)

	require.NoError(t, s.ApplyReview(ActionApprove, Reviewer{ID: "approver"}, "", now))
	assert.Equal(t, StatusApproved, s.Status)
	assert.Len(t, s.History, 3)
}

func TestApplyReviewRejectRequiresComments(t *testing.T) {
	for _, status := range []SheetStatus{StatusSubmitted, StatusChecked, StatusVerified} {
		s := testSheet(2025, 2)
		s.Status = status
		sig, _ := s.StageSignatory()

		err := s.ApplyReview(ActionReject, Reviewer{ID: sig}, "   ", time.Now())
		assert.ErrorIs(t, err, ErrCommentsRequired, "from %s", status)
		assert.Equal(t, status, s.Status)
		assert.Empty(t, s.History)

		require.NoError(t, s.ApplyReview(ActionReject, Reviewer{ID: sig}, "numbers do not add up", time.Now()))
		assert.Equal(t, StatusRejected, s.Status)
		require.Len(t, s.History, 1)
		assert.Equal(t, ActionReject, s.History[0].Action)
	}
}

func TestSubmitRequiresAllSummaryFields(t *testing.T) {
	s := testSheet(2025, 2)
	now := time.Now()

	incomplete := completeSummary()
	incomplete.RootCause = strPtr("")
	err := s.Submit(incomplete, "owner-1", now)
	var verr *SummaryValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Missing, "root_cause")
	assert.Equal(t, StatusDraft, s.Status)

	missing := completeSummary()
	missing.OverallPercentage = nil
	err = s.Submit(missing, "owner-1", now)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Missing, "overall_percentage")
	assert.Equal(t, StatusDraft, s.Status)
}

// All-zero and "none" values are legitimate entries and must pass.
func TestSubmitAcceptsZeroValues(t *testing.T) {
	s := testSheet(2025, 2)
	now := time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Submit(completeSummary(), "owner-1", now))
	assert.Equal(t, StatusSubmitted, s.Status)
	require.NotNil(t, s.Summary.SubmissionDate)
	assert.Equal(t, now, *s.Summary.SubmissionDate)
	// Submission is not a review action
	assert.Empty(t, s.History)
}

func TestSubmitOnlyByOwnerFromEditableStatus(t *testing.T) {
	s := testSheet(2025, 2)

	err := s.Submit(completeSummary(), "not-owner", time.Now())
	assert.ErrorIs(t, err, ErrNotSheetOwner)

	s.Status = StatusSubmitted
	err = s.Submit(completeSummary(), "owner-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// A rejected sheet reopens for resubmission
	s.Status = StatusRejected
	require.NoError(t, s.Submit(completeSummary(), "owner-1", time.Now()))
	assert.Equal(t, StatusSubmitted, s.Status)
}

func TestCheckThenHistoryScenario(t *testing.T) {
	s := testSheet(2025, 2)
	require.NoError(t, s.Submit(completeSummary(), "owner-1", time.Now()))

	before := len(s.History)
	require.NoError(t, s.ApplyReview(ActionCheck, Reviewer{ID: "checker", Name: "Checker"}, "ok", time.Now()))
	assert.Equal(t, StatusChecked, s.Status)
	require.Len(t, s.History, before+1)
	assert.Equal(t, ActionCheck, s.History[len(s.History)-1].Action)
}

func TestSetEntryValidation(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	assert.ErrorIs(t, s.SetEntry("jobs_filed", 0, 1, now), ErrInvalidDay)
	assert.ErrorIs(t, s.SetEntry("jobs_filed", 29, 1, now), ErrInvalidDay) // 2025-02 has 28 days
	assert.ErrorIs(t, s.SetEntry("jobs_filed", 3, -1, now), ErrInvalidRowValue)
	assert.ErrorIs(t, s.SetEntry("missing", 3, 1, now), ErrRowNotFound)

	// Checkbox rows only take 0 or 1
	assert.ErrorIs(t, s.SetEntry("dsr_sent", 3, 2, now), ErrInvalidRowValue)
	require.NoError(t, s.SetEntry("dsr_sent", 3, 1, now))
	require.NoError(t, s.SetEntry("dsr_sent", 3, 0, now))

	s.Status = StatusSubmitted
	assert.ErrorIs(t, s.SetEntry("jobs_filed", 3, 1, now), ErrSheetLocked)
}

func TestCustomRowLifecycle(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	row, err := s.AddCustomRow("Ad-hoc audits", RowTypeNumeric, now)
	require.NoError(t, err)
	assert.True(t, row.IsCustom)
	assert.Regexp(t, `^custom_\d+$`, row.RowID)
	assert.Len(t, s.Rows, 3)

	// Template rows cannot be removed, custom rows can
	assert.ErrorIs(t, s.RemoveRow("jobs_filed", now), ErrRowNotCustom)
	require.NoError(t, s.RemoveRow(row.RowID, now))
	assert.Len(t, s.Rows, 2)
	assert.ErrorIs(t, s.RemoveRow(row.RowID, now), ErrRowNotFound)

	// Locked once out of DRAFT/REJECTED
	s.Status = StatusSubmitted
	_, err = s.AddCustomRow("late addition", RowTypeNumeric, now)
	assert.ErrorIs(t, err, ErrSheetLocked)
	assert.ErrorIs(t, s.RemoveRow("jobs_filed", now), ErrSheetLocked)
}

func TestNewSheetFromTemplate(t *testing.T) {
	tpl := Template{
		ID:   "tpl-1",
		Name: "Import Ops",
		Rows: TemplateRows{
			{RowID: "jobs_filed", Label: "Jobs Filed", Type: RowTypeNumeric},
			{RowID: "dsr_sent", Label: "DSR Sent", Type: RowTypeCheckbox},
		},
	}
	sig := Signatories{CheckedBy: "c", VerifiedBy: "v", ApprovedBy: "a"}

	s := NewSheetFromTemplate("owner-1", 2025, 2, tpl, sig)
	assert.Equal(t, StatusDraft, s.Status)
	assert.Equal(t, sig, s.Signatories)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "jobs_filed", s.Rows[0].RowID)
	assert.False(t, s.Rows[0].IsCustom)
	assert.Equal(t, 1, s.Rows[1].Position)
}
