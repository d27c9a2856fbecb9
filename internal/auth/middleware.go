package auth

import (
	"context"
	"net/http"

	"github.com/ekaracan/vetaris/internal/model"
)

// SessionCookieName is the cookie carrying the session token. The cookie is
// HttpOnly and scoped to the root path; page scripts can never read it.
const SessionCookieName = "session_id"

// Authenticator validates a session token against the credential store.
// Implemented by service.AuthService; declared here so the middleware does
// not import the service package.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
}

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write the
// identity in a request context — no collisions with other packages.
type contextKey struct{}

var identityKey contextKey

// RequireSession enforces authentication on protected routes.
//
// It reads the session token from the HttpOnly cookie, validates it via the
// Authenticator, and stores the resulting Identity in the request context.
// Missing, unknown, or expired tokens end the request with 401 — handlers
// behind this middleware can rely on IdentityFromContext succeeding.
func RequireSession(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, authn)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin enforces authentication AND the admin flag.
//
// The two failure modes are distinct on purpose: no valid session is 401,
// a valid session without admin rights is 403. Admin status is read from the
// freshly authenticated identity, never from anything the client sent.
func RequireAdmin(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := extractIdentity(r, authn)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !identity.IsAdmin {
				writeAuthError(w, http.StatusForbidden, "admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the request
// context. Returns (nil, false) if the request did not pass through
// RequireSession or RequireAdmin.
func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	return identity, ok && identity != nil
}

// extractIdentity reads the session cookie and validates it.
func extractIdentity(r *http.Request, authn Authenticator) (*model.Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		// http.ErrNoCookie — the browser sent no session at all
		return nil, err
	}
	return authn.Authenticate(r.Context(), cookie.Value)
}

// writeAuthError emits the wire-format error body without pulling in the
// handler package (which would be an import cycle).
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
