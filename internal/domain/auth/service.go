package auth

import (
	"context"

	"github.com/eximdesk/exim-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	VerifySession(ctx context.Context, userID string) (user.PublicUser, error)
}
