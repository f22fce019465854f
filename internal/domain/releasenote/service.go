package releasenote

import "context"

type ReleaseNoteService interface {
	ListPublished(ctx context.Context) ([]ReleaseNote, error)
	ListAll(ctx context.Context) ([]ReleaseNote, error)
	Create(ctx context.Context, createdBy string, req CreateRequest) (ReleaseNote, error)
	Update(ctx context.Context, id string, req UpdateRequest) (ReleaseNote, error)
	Delete(ctx context.Context, id string) error
}
