package middleware

import (
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/auth"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Session holds the caller's identity as carried in the session token.
type Session struct {
	UserID   string
	Username string
	Name     string
	Role     string
}

func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// SessionFromRequest extracts the verified session claims. Only callable
// behind AuthRequired.
func SessionFromRequest(r *http.Request) (Session, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Session{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || username == "" {
		return Session{}, auth.ErrInvalidToken
	}
	return Session{
		UserID:   userID,
		Username: username,
		Name:     name,
		Role:     role,
	}, nil
}

// AuthRequired rejects requests without a valid session token. The token is
// read from the session cookie or an Authorization header by the
// jwtauth.Verifier installed upstream.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "session" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
