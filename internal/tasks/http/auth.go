package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin exchanges a username and password for an access token.
//
//	@Summary		Log in
//	@Description	Verifies the username and password and issues a 60 minute HS256 access token whose subject is the user's email. refresh_token is always null.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.LoginRequest								true	"Credentials"
//	@Success		200		{object}	tasksdk.DataResponse[tasksdk.TokenResponse]	"Access token"
//	@Failure		400		{object}	tasksdk.ErrorResponse								"Malformed body or missing fields"
//	@Failure		401		{object}	tasksdk.ErrorResponse								"Invalid username or password"
//	@Failure		429		{object}	tasksdk.ErrorResponse								"Too many attempts"
//	@Failure		500		{object}	tasksdk.ErrorResponse								"Internal server error"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req tasksdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		// Unknown username and wrong password look the same from outside.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			tasksdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		tasksdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteData(w, http.StatusOK, tasksdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Login successful")
}

// HandleLogout ends the caller's session. Tokens are stateless and stay
// valid until they expire; clients are expected to discard theirs.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	tasksdk.DataResponse[any]	"Logged out"
//	@Failure		401	{object}	tasksdk.ErrorResponse		"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok && claims.ExpiresAt != nil {
		l = l.With("sub", claims.Subject, "token_expires_at", claims.ExpiresAt.Time)
	}
	l.Info("user logged out")
	httpx.WriteData(w, http.StatusOK, nil, "Logged out successfully")
}
