// Package handler contains the HTTP layer: request parsing, response
// serialization, and nothing else. Business rules live in the service
// package; handlers translate between HTTP and domain types.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/ekaracan/vetaris/internal/auth"
	"github.com/ekaracan/vetaris/internal/service"
)

// AuthHandler manages registration, login, logout, and the identity probe.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
	logger       *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         authSvc,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new user account.
//
// HTTP: POST /api/auth/register
// BODY: {"email": "...", "password": "..."}
//
// 201 with the new user on success, 409 if the email is taken.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and sets the session cookie.
//
// HTTP: POST /api/auth/login
//
// The cookie is HttpOnly and root-scoped: the browser sends it on every
// subsequent request and page scripts can never read it. 401 on any
// credential failure, with no hint whether the email exists.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  result.User.ID,
		"email":    result.User.Email,
		"is_admin": result.User.IsAdmin,
	})
}

// HandleLogout deletes the session and clears the cookie.
//
// HTTP: POST /api/auth/logout
//
// Public and idempotent — logging out without a session (or twice) is 204.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	// MaxAge -1 tells the browser to drop the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the caller's identity.
//
// HTTP: GET /api/auth/me (RequiresSession)
//
// The middleware has already authenticated the request; the identity is in
// the context.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Only reachable if the route is miswired without RequireSession.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, identity)
}
