package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/domain/auth"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/eximdesk/exim-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	VerifySession(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler. The session token is set as an HttpOnly
// cookie; the body carries only the public user.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	loginResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(loginResponse.Token, loginResponse.ExpiresAt))
	slog.Info("User logged in successfully", "username", loginResponse.User.Username)
	response.SuccessWithMessage(w, "Logged in successfully", loginResponse)
}

// VerifySession implements AuthHandler. Runs behind AuthRequired; re-checks
// the account so deactivation invalidates live sessions.
func (a *AuthHandlerImpl) VerifySession(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.SessionFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	publicUser, err := a.authService.VerifySession(r.Context(), session.UserID)
	if err != nil {
		slog.Error("VerifySession service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, publicUser)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.jwtService.ClearedSessionCookie())
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
