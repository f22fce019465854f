package feedback

import "context"

type Repository interface {
	Create(ctx context.Context, fb Feedback) (Feedback, error)
	GetByID(ctx context.Context, id string) (Feedback, error)
	List(ctx context.Context) ([]Feedback, error)
	ListByUsername(ctx context.Context, username string) ([]Feedback, error)
	Update(ctx context.Context, fb Feedback) error
	Delete(ctx context.Context, id string) error
}
