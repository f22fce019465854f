package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrAccountDeactivated = errors.New("Account is deactivated")
	ErrInvalidToken       = errors.New("Invalid or expired session token")
	ErrUserNotFound       = errors.New("User not found")
)
