package kpi

import "context"

// TemplateRepository - interface for kpi_templates table
type TemplateRepository interface {
	Create(ctx context.Context, tpl Template) (Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	GetByName(ctx context.Context, name string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, id string) error
}

// SheetRepository - interface for kpi_sheets and its row/history tables.
// Save persists the whole aggregate (sheet fields, rows, history) in one
// transaction; the server-side aggregate is the source of truth.
type SheetRepository interface {
	Create(ctx context.Context, sheet Sheet) (Sheet, error)
	GetByID(ctx context.Context, id string) (Sheet, error)
	GetByOwnerPeriod(ctx context.Context, ownerID string, year, month int) (Sheet, error)
	ListByOwnerYear(ctx context.Context, ownerID string, year int) ([]SheetListItem, error)
	ListAll(ctx context.Context, year int) ([]SheetListItem, error)
	ListPendingFor(ctx context.Context, signatoryID string) ([]SheetListItem, error)
	Save(ctx context.Context, sheet Sheet) error
	Replace(ctx context.Context, sheet Sheet) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (AdminStats, error)
	ListUnsubmitted(ctx context.Context, year, month int) ([]UnsubmittedSheet, error)
}

// UnsubmittedSheet feeds the deadline-reminder job: a DRAFT or REJECTED
// sheet together with its owner's contact details.
type UnsubmittedSheet struct {
	SheetID    string
	OwnerID    string
	OwnerName  *string
	OwnerEmail *string
	Year       int
	Month      int
	Status     SheetStatus
}
