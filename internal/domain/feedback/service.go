package feedback

import "context"

// Actor identifies the caller for the ownership checks: authors manage
// their own entries, admins manage all of them.
type Actor struct {
	Username string
	IsAdmin  bool
}

type FeedbackService interface {
	Create(ctx context.Context, username string, req CreateRequest) (Feedback, error)
	List(ctx context.Context) ([]Feedback, error)
	ListByUsername(ctx context.Context, username string) ([]Feedback, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateRequest) (Feedback, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
