package kpi

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eximdesk/exim-backend-go/internal/domain/audit"
	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheetRepo struct {
	sheets map[string]kpi.Sheet
	nextID int
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{sheets: make(map[string]kpi.Sheet)}
}

func (r *fakeSheetRepo) Create(ctx context.Context, sheet kpi.Sheet) (kpi.Sheet, error) {
	for _, existing := range r.sheets {
		if existing.OwnerID == sheet.OwnerID && existing.Year == sheet.Year && existing.Month == sheet.Month {
			return kpi.Sheet{}, kpi.ErrSheetExists
		}
	}
	r.nextID++
	sheet.ID = fmt.Sprintf("sheet-%d", r.nextID)
	r.sheets[sheet.ID] = sheet
	return sheet, nil
}

func (r *fakeSheetRepo) GetByID(ctx context.Context, id string) (kpi.Sheet, error) {
	sheet, ok := r.sheets[id]
	if !ok {
		return kpi.Sheet{}, kpi.ErrSheetNotFound
	}
	return sheet, nil
}

func (r *fakeSheetRepo) GetByOwnerPeriod(ctx context.Context, ownerID string, year, month int) (kpi.Sheet, error) {
	for _, sheet := range r.sheets {
		if sheet.OwnerID == ownerID && sheet.Year == year && sheet.Month == month {
			return sheet, nil
		}
	}
	return kpi.Sheet{}, kpi.ErrSheetNotFound
}

func (r *fakeSheetRepo) ListByOwnerYear(ctx context.Context, ownerID string, year int) ([]kpi.SheetListItem, error) {
	return nil, nil
}

func (r *fakeSheetRepo) ListAll(ctx context.Context, year int) ([]kpi.SheetListItem, error) {
	return nil, nil
}

func (r *fakeSheetRepo) ListPendingFor(ctx context.Context, signatoryID string) ([]kpi.SheetListItem, error) {
	return nil, nil
}

func (r *fakeSheetRepo) Save(ctx context.Context, sheet kpi.Sheet) error {
	if _, ok := r.sheets[sheet.ID]; !ok {
		return kpi.ErrSheetNotFound
	}
	r.sheets[sheet.ID] = sheet
	return nil
}

func (r *fakeSheetRepo) Replace(ctx context.Context, sheet kpi.Sheet) error {
	return r.Save(ctx, sheet)
}

func (r *fakeSheetRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sheets[id]; !ok {
		return kpi.ErrSheetNotFound
	}
	delete(r.sheets, id)
	return nil
}

func (r *fakeSheetRepo) Stats(ctx context.Context) (kpi.AdminStats, error) {
	return kpi.AdminStats{}, nil
}

func (r *fakeSheetRepo) ListUnsubmitted(ctx context.Context, year, month int) ([]kpi.UnsubmittedSheet, error) {
	var items []kpi.UnsubmittedSheet
	for _, sheet := range r.sheets {
		if sheet.Year == year && sheet.Month == month && sheet.Status.Editable() {
			email := sheet.OwnerID + "@example.test"
			items = append(items, kpi.UnsubmittedSheet{
				SheetID:    sheet.ID,
				OwnerID:    sheet.OwnerID,
				OwnerEmail: &email,
				Year:       year,
				Month:      month,
				Status:     sheet.Status,
			})
		}
	}
	return items, nil
}

type fakeTemplateRepo struct {
	templates map[string]kpi.Template
}

func (r *fakeTemplateRepo) Create(ctx context.Context, tpl kpi.Template) (kpi.Template, error) {
	for _, existing := range r.templates {
		if existing.Name == tpl.Name {
			return kpi.Template{}, kpi.ErrTemplateNameTaken
		}
	}
	tpl.ID = fmt.Sprintf("tpl-%d", len(r.templates)+1)
	r.templates[tpl.ID] = tpl
	return tpl, nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, id string) (kpi.Template, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return kpi.Template{}, kpi.ErrTemplateNotFound
	}
	return tpl, nil
}

func (r *fakeTemplateRepo) GetByName(ctx context.Context, name string) (kpi.Template, error) {
	for _, tpl := range r.templates {
		if tpl.Name == name {
			return tpl, nil
		}
	}
	return kpi.Template{}, kpi.ErrTemplateNotFound
}

func (r *fakeTemplateRepo) List(ctx context.Context) ([]kpi.Template, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id string) error {
	delete(r.templates, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (r *fakeAuditRepo) Append(ctx context.Context, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	return nil, 0, nil
}

func (r *fakeAuditRepo) ListByJob(ctx context.Context, jobNo, year string) ([]audit.Entry, error) {
	return nil, nil
}

func (r *fakeAuditRepo) Stats(ctx context.Context) (audit.Stats, error) {
	return audit.Stats{}, nil
}

type sentMail struct {
	kind string
	to   string
}

type fakeEmailService struct {
	sent []sentMail
}

func (s *fakeEmailService) SendReviewRequested(to, reviewerName, ownerName, period, stage string) error {
	s.sent = append(s.sent, sentMail{kind: "review_requested", to: to})
	return nil
}

func (s *fakeEmailService) SendSheetDecision(to, ownerName, period, decision, comments string) error {
	s.sent = append(s.sent, sentMail{kind: "decision_" + decision, to: to})
	return nil
}

func (s *fakeEmailService) SendDeadlineReminder(to, ownerName, period, deadline string) error {
	s.sent = append(s.sent, sentMail{kind: "reminder", to: to})
	return nil
}

type fixture struct {
	service *KPIServiceImpl
	sheets  *fakeSheetRepo
	audits  *fakeAuditRepo
	mails   *fakeEmailService
}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()

	users := &fakeUserRepo{users: map[string]user.User{
		"owner-1":    {ID: "owner-1", Username: "asha", FullName: "Asha Nair", Email: strPtr("asha@example.test"), IsActive: true},
		"checker-1":  {ID: "checker-1", Username: "ravi", FullName: "Ravi Kumar", Email: strPtr("ravi@example.test"), IsActive: true},
		"verifier-1": {ID: "verifier-1", Username: "meera", FullName: "Meera Shah", Email: strPtr("meera@example.test"), IsActive: true},
		"approver-1": {ID: "approver-1", Username: "vikram", FullName: "Vikram Rao", Email: strPtr("vikram@example.test"), IsActive: true},
	}}
	templates := &fakeTemplateRepo{templates: map[string]kpi.Template{
		"tpl-1": {
			ID:   "tpl-1",
			Name: "Operations Monthly KPI",
			Rows: kpi.TemplateRows{
				{RowID: "jobs_filed", Label: "Jobs filed", Type: kpi.RowTypeNumeric},
				{RowID: "dsr_sent", Label: "Daily status report sent", Type: kpi.RowTypeCheckbox},
			},
		},
	}}
	sheets := newFakeSheetRepo()
	audits := &fakeAuditRepo{}
	mails := &fakeEmailService{}

	svc := NewKPIService(sheets, templates, users, audits, mails).(*KPIServiceImpl)
	svc.now = func() time.Time { return now }

	return fixture{service: svc, sheets: sheets, audits: audits, mails: mails}
}

func generateRequest() kpi.GenerateSheetRequest {
	return kpi.GenerateSheetRequest{
		Year:       2025,
		Month:      8,
		TemplateID: "tpl-1",
		Signatories: kpi.Signatories{
			CheckedBy:  "checker-1",
			VerifiedBy: "verifier-1",
			ApprovedBy: "approver-1",
		},
	}
}

func completeSummary() kpi.Summary {
	zero := 0.0
	return kpi.Summary{
		BusinessLoss:            &zero,
		RootCause:               strPtr("none"),
		ActionPlan:              strPtr("none"),
		OverallPercentage:       &zero,
		Blockers:                strPtr("none"),
		BlockersRootCause:       strPtr("none"),
		CanHODSolve:             strPtr("No"),
		TotalWorkloadPercentage: &zero,
	}
}

func TestGenerateSheetConflictAndOverwrite(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	created, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusDraft, created.Status)
	assert.Len(t, created.Rows, 2)

	_, err = f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	assert.ErrorIs(t, err, kpi.ErrSheetExists)

	req := generateRequest()
	req.Overwrite = true
	overwritten, err := f.service.GenerateSheet(ctx, "owner-1", req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, overwritten.ID, "overwrite keeps the sheet id")
	assert.Equal(t, kpi.StatusDraft, overwritten.Status)
}

func TestGenerateSheetUnknownSignatory(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	req := generateRequest()
	req.Signatories.CheckedBy = "nobody"
	_, err := f.service.GenerateSheet(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSetEntryOwnershipGate(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)

	five := 5.0
	entry := kpi.EntryRequest{SheetID: sheet.ID, RowID: "jobs_filed", Day: 4, Value: &five}

	_, err = f.service.SetEntry(ctx, "checker-1", entry)
	assert.ErrorIs(t, err, kpi.ErrNotSheetOwner)

	updated, err := f.service.SetEntry(ctx, "owner-1", entry)
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Rows[0].Total)
	assert.Equal(t, 5.0, updated.ColumnTotals[4])
}

func TestSubmitNotifiesCheckerAndAudits(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)

	submitted, err := f.service.Submit(ctx, "owner-1", kpi.SubmitRequest{
		SheetID: sheet.ID,
		Summary: completeSummary(),
	})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusSubmitted, submitted.Status)
	assert.Empty(t, submitted.History, "submission writes no approval history")

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, "asha", f.audits.entries[0].Username)
	assert.Equal(t, "SUBMIT", f.audits.entries[0].Action)
	assert.Equal(t, "KPI", f.audits.entries[0].Module)

	require.Len(t, f.mails.sent, 1)
	assert.Equal(t, "review_requested", f.mails.sent[0].kind)
	assert.Equal(t, "ravi@example.test", f.mails.sent[0].to)
}

func TestReviewChainEndToEnd(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, "owner-1", kpi.SubmitRequest{SheetID: sheet.ID, Summary: completeSummary()})
	require.NoError(t, err)

	// Wrong reviewer for the stage.
	_, err = f.service.Review(ctx, kpi.Reviewer{ID: "verifier-1", Name: "Meera Shah"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionCheck})
	assert.ErrorIs(t, err, kpi.ErrNotSignatory)

	checked, err := f.service.Review(ctx, kpi.Reviewer{ID: "checker-1", Name: "Ravi Kumar"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionCheck, Comments: "ok"})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusChecked, checked.Status)
	require.Len(t, checked.History, 1)
	assert.Equal(t, kpi.ActionCheck, checked.History[0].Action)

	verified, err := f.service.Review(ctx, kpi.Reviewer{ID: "verifier-1", Name: "Meera Shah"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionVerify})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusVerified, verified.Status)

	approved, err := f.service.Review(ctx, kpi.Reviewer{ID: "approver-1", Name: "Vikram Rao"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionApprove})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusApproved, approved.Status)
	assert.Len(t, approved.History, 3)

	// submit + three reviews
	assert.Len(t, f.audits.entries, 4)

	kinds := make([]string, 0, len(f.mails.sent))
	for _, mail := range f.mails.sent {
		kinds = append(kinds, mail.kind)
	}
	assert.Equal(t, []string{
		"review_requested", // to checker on submit
		"review_requested", // to verifier after check
		"review_requested", // to approver after verify
		"decision_approved",
	}, kinds)
	assert.Equal(t, "asha@example.test", f.mails.sent[3].to)
}

func TestRejectNotifiesOwnerWithComments(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, "owner-1", kpi.SubmitRequest{SheetID: sheet.ID, Summary: completeSummary()})
	require.NoError(t, err)

	_, err = f.service.Review(ctx, kpi.Reviewer{ID: "checker-1", Name: "Ravi Kumar"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionReject})
	assert.ErrorIs(t, err, kpi.ErrCommentsRequired)

	rejected, err := f.service.Review(ctx, kpi.Reviewer{ID: "checker-1", Name: "Ravi Kumar"},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionReject, Comments: "numbers missing"})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusRejected, rejected.Status)

	last := f.mails.sent[len(f.mails.sent)-1]
	assert.Equal(t, "decision_rejected", last.kind)
	assert.Equal(t, "asha@example.test", last.to)
}

func TestAdminOverridesSignatory(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, "owner-1", kpi.SubmitRequest{SheetID: sheet.ID, Summary: completeSummary()})
	require.NoError(t, err)

	checked, err := f.service.Review(ctx, kpi.Reviewer{ID: "approver-1", Name: "Vikram Rao", IsAdmin: true},
		kpi.ReviewRequest{SheetID: sheet.ID, Action: kpi.ActionCheck})
	require.NoError(t, err)
	assert.Equal(t, kpi.StatusChecked, checked.Status)
	assert.Equal(t, "approver-1", checked.History[0].By)
}

func TestGetSheetVisibility(t *testing.T) {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	sheet, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)

	_, err = f.service.GetSheet(ctx, kpi.Reviewer{ID: "owner-1"}, sheet.ID)
	assert.NoError(t, err)
	_, err = f.service.GetSheet(ctx, kpi.Reviewer{ID: "checker-1"}, sheet.ID)
	assert.NoError(t, err)
	_, err = f.service.GetSheet(ctx, kpi.Reviewer{ID: "stranger", IsAdmin: true}, sheet.ID)
	assert.NoError(t, err)

	_, err = f.service.GetSheet(ctx, kpi.Reviewer{ID: "stranger"}, sheet.ID)
	assert.ErrorIs(t, err, kpi.ErrNotSignatory)
}

func TestSendDeadlineReminders(t *testing.T) {
	// August 2025: the 31st is a Sunday, so the deadline is Saturday the
	// 30th. The 29th is inside the reminder window.
	nearDeadline := time.Date(2025, 8, 29, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, nearDeadline)
	ctx := context.Background()

	_, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.SendDeadlineReminders(ctx))
	require.Len(t, f.mails.sent, 1)
	assert.Equal(t, "reminder", f.mails.sent[0].kind)
	assert.Equal(t, "owner-1@example.test", f.mails.sent[0].to)
}

func TestSendDeadlineRemindersOutsideWindow(t *testing.T) {
	earlyMonth := time.Date(2025, 8, 5, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, earlyMonth)
	ctx := context.Background()

	_, err := f.service.GenerateSheet(ctx, "owner-1", generateRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.SendDeadlineReminders(ctx))
	assert.Empty(t, f.mails.sent)
}
