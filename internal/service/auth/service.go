package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/eximdesk/exim-backend-go/internal/domain/auth"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.Repository
	jwt.Service
}

func NewAuthService(userRepository user.Repository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		Repository: userRepository,
		Service:    jwtService,
	}
}

// Login implements auth.AuthService. A missing user and a wrong password
// both come back as ErrInvalidCredentials so the response never leaks which
// usernames exist.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.Repository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	token, expiresAt, err := a.Service.GenerateSessionToken(userData)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	return auth.LoginResponse{
		User:      userData.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifySession implements auth.AuthService. The token signature is already
// checked by the middleware; this re-checks the account against the
// database so deactivation takes effect before the token expires.
func (a *AuthServiceImpl) VerifySession(ctx context.Context, userID string) (user.PublicUser, error) {
	userData, err := a.Repository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.PublicUser{}, auth.ErrInvalidToken
		}
		return user.PublicUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if !userData.IsActive {
		return user.PublicUser{}, auth.ErrAccountDeactivated
	}
	return userData.Public(), nil
}
