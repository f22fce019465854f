package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/eximdesk/exim-backend-go/internal/domain/auth"
	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

type fakeJWTService struct{}

func (fakeJWTService) GenerateSessionToken(u user.User) (string, int64, error) {
	return "token-" + u.ID, 9999999999, nil
}

func (fakeJWTService) JWTAuth() *jwtauth.JWTAuth                     { return nil }
func (fakeJWTService) SessionCookie(string, int64) *http.Cookie      { return nil }
func (fakeJWTService) ClearedSessionCookie() *http.Cookie            { return nil }
func (fakeJWTService) UserIDFromToken(jwt.Token) (string, bool)      { return "", false }

func newAuthFixture(t *testing.T) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {
			ID:           "user-1",
			Username:     "asha",
			FullName:     "Asha Nair",
			Role:         user.RoleUser,
			PasswordHash: string(hash),
			IsActive:     true,
		},
		"user-2": {
			ID:           "user-2",
			Username:     "former",
			FullName:     "Former Employee",
			Role:         user.RoleUser,
			PasswordHash: string(hash),
			IsActive:     false,
		},
	}}
	return NewAuthService(repo, fakeJWTService{})
}

func TestLoginSuccess(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "asha",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-user-1", resp.Token)
	assert.Equal(t, "asha", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "asha",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthFixture(t)

	// Unknown username and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "former",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
}

func TestVerifySession(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	pub, err := svc.VerifySession(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "asha", pub.Username)

	_, err = svc.VerifySession(ctx, "user-2")
	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)

	_, err = svc.VerifySession(ctx, "gone")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
