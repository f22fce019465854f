package audit

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
	ListByJob(ctx context.Context, jobNo, year string) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
}
