package user

import "context"

type UserService interface {
	List(ctx context.Context) ([]PublicUser, error)
	Register(ctx context.Context, req CreateUserRequest) (PublicUser, error)
	SetActive(ctx context.Context, id string, active bool) error
}
