package kpi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eximdesk/exim-backend-go/internal/domain/audit"
	"github.com/eximdesk/exim-backend-go/internal/domain/kpi"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/pkg/email"
)

// reminderWindow is how close to the submission deadline unsubmitted sheets
// start receiving reminder mails.
const reminderWindow = 72 * time.Hour

type KPIServiceImpl struct {
	sheets    kpi.SheetRepository
	templates kpi.TemplateRepository
	users     user.Repository
	audits    audit.Repository
	email.EmailService

	now func() time.Time
}

func NewKPIService(
	sheetRepository kpi.SheetRepository,
	templateRepository kpi.TemplateRepository,
	userRepository user.Repository,
	auditRepository audit.Repository,
	emailService email.EmailService,
) kpi.KPIService {
	return &KPIServiceImpl{
		sheets:       sheetRepository,
		templates:    templateRepository,
		users:        userRepository,
		audits:       auditRepository,
		EmailService: emailService,
		now:          time.Now,
	}
}

// CreateTemplate implements kpi.KPIService.
func (s *KPIServiceImpl) CreateTemplate(ctx context.Context, createdBy string, req kpi.CreateTemplateRequest) (kpi.Template, error) {
	if err := req.Validate(); err != nil {
		return kpi.Template{}, err
	}
	return s.templates.Create(ctx, kpi.Template{
		Name:      req.Name,
		Rows:      kpi.TemplateRows(req.Rows),
		CreatedBy: createdBy,
	})
}

// ListTemplates implements kpi.KPIService.
func (s *KPIServiceImpl) ListTemplates(ctx context.Context) ([]kpi.Template, error) {
	return s.templates.List(ctx)
}

// DeleteTemplate implements kpi.KPIService.
func (s *KPIServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

// GenerateSheet implements kpi.KPIService. A sheet already existing for the
// owner's period is a conflict unless the request asks to overwrite, in
// which case the fresh grid replaces it under the same id.
func (s *KPIServiceImpl) GenerateSheet(ctx context.Context, ownerID string, req kpi.GenerateSheetRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}

	tpl, err := s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return kpi.SheetResponse{}, err
	}

	for _, signatoryID := range []string{req.Signatories.CheckedBy, req.Signatories.VerifiedBy, req.Signatories.ApprovedBy} {
		if _, err := s.users.GetByID(ctx, signatoryID); err != nil {
			return kpi.SheetResponse{}, fmt.Errorf("signatory %s: %w", signatoryID, err)
		}
	}

	sheet := kpi.NewSheetFromTemplate(ownerID, req.Year, req.Month, tpl, req.Signatories)

	existing, err := s.sheets.GetByOwnerPeriod(ctx, ownerID, req.Year, req.Month)
	switch {
	case err == nil:
		if !req.Overwrite {
			return kpi.SheetResponse{}, kpi.ErrSheetExists
		}
		sheet.ID = existing.ID
		if err := s.sheets.Replace(ctx, sheet); err != nil {
			return kpi.SheetResponse{}, err
		}
	case errors.Is(err, kpi.ErrSheetNotFound):
		sheet, err = s.sheets.Create(ctx, sheet)
		if err != nil {
			return kpi.SheetResponse{}, err
		}
	default:
		return kpi.SheetResponse{}, err
	}

	return s.loadResponse(ctx, sheet.ID)
}

func (s *KPIServiceImpl) loadResponse(ctx context.Context, id string) (kpi.SheetResponse, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return kpi.SheetResponse{}, err
	}
	return sheet.ToResponse(s.now()), nil
}

// GetSheet implements kpi.KPIService. Visible to the owner, the assigned
// signatories and admins.
func (s *KPIServiceImpl) GetSheet(ctx context.Context, actor kpi.Reviewer, id string) (kpi.SheetResponse, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return kpi.SheetResponse{}, err
	}
	if !actor.IsAdmin && sheet.OwnerID != actor.ID &&
		sheet.Signatories.CheckedBy != actor.ID &&
		sheet.Signatories.VerifiedBy != actor.ID &&
		sheet.Signatories.ApprovedBy != actor.ID {
		return kpi.SheetResponse{}, kpi.ErrNotSignatory
	}
	return sheet.ToResponse(s.now()), nil
}

// ListSheets implements kpi.KPIService.
func (s *KPIServiceImpl) ListSheets(ctx context.Context, ownerID string, year int) ([]kpi.SheetListItem, error) {
	return s.sheets.ListByOwnerYear(ctx, ownerID, year)
}

// mutateOwnSheet loads a sheet, checks ownership, applies fn and saves.
func (s *KPIServiceImpl) mutateOwnSheet(ctx context.Context, actorID, sheetID string, fn func(sheet *kpi.Sheet) error) (kpi.SheetResponse, error) {
	sheet, err := s.sheets.GetByID(ctx, sheetID)
	if err != nil {
		return kpi.SheetResponse{}, err
	}
	if sheet.OwnerID != actorID {
		return kpi.SheetResponse{}, kpi.ErrNotSheetOwner
	}
	if err := fn(&sheet); err != nil {
		return kpi.SheetResponse{}, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return kpi.SheetResponse{}, err
	}
	return sheet.ToResponse(s.now()), nil
}

// SetEntry implements kpi.KPIService.
func (s *KPIServiceImpl) SetEntry(ctx context.Context, actorID string, req kpi.EntryRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}
	return s.mutateOwnSheet(ctx, actorID, req.SheetID, func(sheet *kpi.Sheet) error {
		return sheet.SetEntry(req.RowID, req.Day, *req.Value, s.now())
	})
}

// ToggleDay implements kpi.KPIService.
func (s *KPIServiceImpl) ToggleDay(ctx context.Context, actorID string, req kpi.DayStatusRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}
	class, _ := req.Class()
	return s.mutateOwnSheet(ctx, actorID, req.SheetID, func(sheet *kpi.Sheet) error {
		return sheet.ToggleDay(req.Day, class, s.now())
	})
}

// AddRow implements kpi.KPIService.
func (s *KPIServiceImpl) AddRow(ctx context.Context, actorID string, req kpi.AddRowRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}
	return s.mutateOwnSheet(ctx, actorID, req.SheetID, func(sheet *kpi.Sheet) error {
		_, err := sheet.AddCustomRow(req.Label, req.Type, s.now())
		return err
	})
}

// RemoveRow implements kpi.KPIService.
func (s *KPIServiceImpl) RemoveRow(ctx context.Context, actorID, sheetID, rowID string) (kpi.SheetResponse, error) {
	return s.mutateOwnSheet(ctx, actorID, sheetID, func(sheet *kpi.Sheet) error {
		return sheet.RemoveRow(rowID, s.now())
	})
}

// Submit implements kpi.KPIService. On success the first signatory gets a
// review-requested mail and the submission lands in the audit trail.
func (s *KPIServiceImpl) Submit(ctx context.Context, actorID string, req kpi.SubmitRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}

	sheet, err := s.sheets.GetByID(ctx, req.SheetID)
	if err != nil {
		return kpi.SheetResponse{}, err
	}
	if err := sheet.Submit(req.Summary, actorID, s.now()); err != nil {
		return kpi.SheetResponse{}, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return kpi.SheetResponse{}, err
	}

	owner, err := s.users.GetByID(ctx, sheet.OwnerID)
	if err != nil {
		return kpi.SheetResponse{}, fmt.Errorf("failed to get sheet owner: %w", err)
	}
	s.recordAudit(ctx, owner.Username, "SUBMIT", sheetPeriod(sheet))
	s.notifySignatory(ctx, sheet.Signatories.CheckedBy, owner.FullName, sheetPeriod(sheet), "check")

	return sheet.ToResponse(s.now()), nil
}

// Review implements kpi.KPIService.
func (s *KPIServiceImpl) Review(ctx context.Context, actor kpi.Reviewer, req kpi.ReviewRequest) (kpi.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return kpi.SheetResponse{}, err
	}

	sheet, err := s.sheets.GetByID(ctx, req.SheetID)
	if err != nil {
		return kpi.SheetResponse{}, err
	}
	if err := sheet.ApplyReview(req.Action, actor, req.Comments, s.now()); err != nil {
		return kpi.SheetResponse{}, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return kpi.SheetResponse{}, err
	}

	reviewer, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return kpi.SheetResponse{}, fmt.Errorf("failed to get reviewer: %w", err)
	}
	s.recordAudit(ctx, reviewer.Username, string(req.Action), sheetPeriod(sheet))

	period := sheetPeriod(sheet)
	switch sheet.Status {
	case kpi.StatusChecked:
		s.notifySignatory(ctx, sheet.Signatories.VerifiedBy, ownerName(sheet), period, "verification")
	case kpi.StatusVerified:
		s.notifySignatory(ctx, sheet.Signatories.ApprovedBy, ownerName(sheet), period, "approval")
	case kpi.StatusApproved:
		s.notifyOwner(ctx, sheet, period, "approved", req.Comments)
	case kpi.StatusRejected:
		s.notifyOwner(ctx, sheet, period, "rejected", req.Comments)
	}

	return sheet.ToResponse(s.now()), nil
}

// DeleteSheet implements kpi.KPIService.
func (s *KPIServiceImpl) DeleteSheet(ctx context.Context, id string) error {
	return s.sheets.Delete(ctx, id)
}

// AdminStats implements kpi.KPIService.
func (s *KPIServiceImpl) AdminStats(ctx context.Context) (kpi.AdminStats, error) {
	return s.sheets.Stats(ctx)
}

// AllSheets implements kpi.KPIService.
func (s *KPIServiceImpl) AllSheets(ctx context.Context, year int) ([]kpi.SheetListItem, error) {
	return s.sheets.ListAll(ctx, year)
}

// PendingForReviewer implements kpi.KPIService.
func (s *KPIServiceImpl) PendingForReviewer(ctx context.Context, reviewerID string) ([]kpi.SheetListItem, error) {
	return s.sheets.ListPendingFor(ctx, reviewerID)
}

// SendDeadlineReminders implements kpi.KPIService. Runs from the scheduler;
// mails owners of still-unsubmitted sheets once the month's submission
// deadline is near.
func (s *KPIServiceImpl) SendDeadlineReminders(ctx context.Context) error {
	now := s.now().UTC()
	year, month := now.Year(), int(now.Month())

	lastDay := kpi.LastWorkingDay(year, month)
	deadline := time.Date(year, time.Month(month), lastDay, 23, 59, 59, 0, time.UTC)
	if now.After(deadline) || deadline.Sub(now) > reminderWindow {
		return nil
	}

	unsubmitted, err := s.sheets.ListUnsubmitted(ctx, year, month)
	if err != nil {
		return fmt.Errorf("failed to list unsubmitted sheets: %w", err)
	}

	period := periodLabel(year, month)
	deadlineLabel := deadline.Format("2 January 2006")
	for _, item := range unsubmitted {
		if item.OwnerEmail == nil || *item.OwnerEmail == "" {
			continue
		}
		name := item.OwnerID
		if item.OwnerName != nil {
			name = *item.OwnerName
		}
		if err := s.SendDeadlineReminder(*item.OwnerEmail, name, period, deadlineLabel); err != nil {
			slog.Error("failed to send deadline reminder", "sheet_id", item.SheetID, "error", err)
		}
	}
	return nil
}

// recordAudit appends a KPI workflow event. Audit failures are logged, never
// surfaced to the caller.
func (s *KPIServiceImpl) recordAudit(ctx context.Context, username, action, period string) {
	details := "KPI sheet " + period
	err := s.audits.Append(ctx, audit.Entry{
		Username: username,
		Module:   "KPI",
		Action:   action,
		Details:  &details,
	})
	if err != nil {
		slog.Error("failed to append audit entry", "action", action, "error", err)
	}
}

// notifySignatory mails the next reviewer in the chain. Best-effort.
func (s *KPIServiceImpl) notifySignatory(ctx context.Context, signatoryID, ownerName, period, stage string) {
	signatory, err := s.users.GetByID(ctx, signatoryID)
	if err != nil || signatory.Email == nil {
		return
	}
	if err := s.SendReviewRequested(*signatory.Email, signatory.FullName, ownerName, period, stage); err != nil {
		slog.Error("failed to send review-requested mail", "stage", stage, "error", err)
	}
}

// notifyOwner mails the sheet owner about a terminal decision. Best-effort.
func (s *KPIServiceImpl) notifyOwner(ctx context.Context, sheet kpi.Sheet, period, decision, comments string) {
	owner, err := s.users.GetByID(ctx, sheet.OwnerID)
	if err != nil || owner.Email == nil {
		return
	}
	if err := s.SendSheetDecision(*owner.Email, owner.FullName, period, decision, comments); err != nil {
		slog.Error("failed to send sheet-decision mail", "decision", decision, "error", err)
	}
}

func sheetPeriod(sheet kpi.Sheet) string {
	return periodLabel(sheet.Year, sheet.Month)
}

func periodLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month), year)
}

func ownerName(sheet kpi.Sheet) string {
	if sheet.OwnerName != nil {
		return *sheet.OwnerName
	}
	return sheet.OwnerID
}
