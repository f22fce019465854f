package kpi

import "context"

// KPIService is the workflow surface behind the /kpi routes. Actor carries
// the caller's identity from the session token; admin checks for the
// admin-only operations happen in the routing middleware.
type KPIService interface {
	CreateTemplate(ctx context.Context, createdBy string, req CreateTemplateRequest) (Template, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	GenerateSheet(ctx context.Context, ownerID string, req GenerateSheetRequest) (SheetResponse, error)
	GetSheet(ctx context.Context, actor Reviewer, id string) (SheetResponse, error)
	ListSheets(ctx context.Context, ownerID string, year int) ([]SheetListItem, error)
	SetEntry(ctx context.Context, actorID string, req EntryRequest) (SheetResponse, error)
	ToggleDay(ctx context.Context, actorID string, req DayStatusRequest) (SheetResponse, error)
	AddRow(ctx context.Context, actorID string, req AddRowRequest) (SheetResponse, error)
	RemoveRow(ctx context.Context, actorID, sheetID, rowID string) (SheetResponse, error)
	Submit(ctx context.Context, actorID string, req SubmitRequest) (SheetResponse, error)
	Review(ctx context.Context, actor Reviewer, req ReviewRequest) (SheetResponse, error)
	DeleteSheet(ctx context.Context, id string) error

	AdminStats(ctx context.Context) (AdminStats, error)
	AllSheets(ctx context.Context, year int) ([]SheetListItem, error)
	PendingForReviewer(ctx context.Context, reviewerID string) ([]SheetListItem, error)

	SendDeadlineReminders(ctx context.Context) error
}
