package releasenote

import "context"

type Repository interface {
	Create(ctx context.Context, note ReleaseNote) (ReleaseNote, error)
	GetByID(ctx context.Context, id string) (ReleaseNote, error)
	ListPublished(ctx context.Context) ([]ReleaseNote, error)
	ListAll(ctx context.Context) ([]ReleaseNote, error)
	Update(ctx context.Context, note ReleaseNote) error
	Delete(ctx context.Context, id string) error
}
