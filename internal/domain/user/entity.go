package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account in the portal directory. Signatories for KPI sheets and
// open-point project members are picked from this directory.
type User struct {
	ID           string
	Username     string
	FullName     string
	Role         Role
	Department   *string
	Designation  *string
	Email        *string
	PasswordHash string
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
