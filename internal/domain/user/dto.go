package user

import "github.com/eximdesk/exim-backend-go/internal/pkg/validator"

// CreateUserRequest registers a new account (admin only).
type CreateUserRequest struct {
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Password    string  `json:"password"`
	Role        Role    `json:"role"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Email       *string `json:"email,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "Username must be 3-30 characters, lowercase letters, digits, dots or underscores"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if r.Role != RoleAdmin && r.Role != RoleUser {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "Role must be admin or user"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Invalid email address"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublicUser is the directory view of an account, safe to return to any
// authenticated user.
type PublicUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Role        Role    `json:"role"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		Department:  u.Department,
		Designation: u.Designation,
		Email:       u.Email,
		IsActive:    u.IsActive,
	}
}
