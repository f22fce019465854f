package user

import (
	"context"
	"fmt"

	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.Repository
}

func NewUserService(userRepository user.Repository) user.UserService {
	return &UserServiceImpl{Repository: userRepository}
}

// List implements user.UserService. Deactivated accounts stay in the
// directory so signatory dropdowns can still resolve their names.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.PublicUser, error) {
	users, err := s.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	public := make([]user.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// Register implements user.UserService.
func (s *UserServiceImpl) Register(ctx context.Context, req user.CreateUserRequest) (user.PublicUser, error) {
	if err := req.Validate(); err != nil {
		return user.PublicUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.PublicUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.Repository.Create(ctx, user.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         req.Role,
		Department:   req.Department,
		Designation:  req.Designation,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if err != nil {
		return user.PublicUser{}, err
	}
	return created.Public(), nil
}

// SetActive implements user.UserService.
func (s *UserServiceImpl) SetActive(ctx context.Context, id string, active bool) error {
	return s.Repository.SetActive(ctx, id, active)
}
