package auth

import (
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "Username is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginResponse carries the public user for the body; the token travels in
// the session cookie, never in JSON.
type LoginResponse struct {
	User      user.PublicUser `json:"user"`
	Token     string          `json:"-"`
	ExpiresAt int64           `json:"-"`
}
