package middleware

import (
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/user"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
)

// AdminOnly gates the admin surfaces on the role claim. The claim comes
// from the signed session token, never from request headers.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := SessionFromRequest(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !session.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
