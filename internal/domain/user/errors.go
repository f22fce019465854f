package user

import "errors"

var (
	ErrUserNotFound           = errors.New("User not found")
	ErrUsernameExists         = errors.New("Username already taken")
	ErrAdminPrivilegeRequired = errors.New("Admin privilege required")
)
