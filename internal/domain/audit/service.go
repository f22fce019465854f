package audit

import "context"

type AuditService interface {
	List(ctx context.Context, filter Filter) (ListResponse, error)
	ListByJob(ctx context.Context, jobNo, year string) ([]EntryResponse, error)
	Stats(ctx context.Context) (Stats, error)
}
