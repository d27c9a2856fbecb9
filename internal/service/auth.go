// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept primitives and typed inputs, never *http.Request, and
// return domain errors from the apperror package — the handler translates
// those into status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/auth"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// SessionTTL is the fixed lifetime of a session, measured from login.
const SessionTTL = 30 * 24 * time.Hour

// invalidCredentials is the single message for every login failure. Unknown
// email and wrong password must be indistinguishable to the caller, or the
// endpoint becomes a user-enumeration oracle.
var invalidCredentials = apperror.Unauthenticated("invalid credentials")

// AuthService handles registration, login, logout, and session validation.
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// compile-time check that AuthService satisfies the middleware's contract
var _ auth.Authenticator = (*AuthService)(nil)

// LoginResult bundles everything the handler needs to set the session
// cookie and respond in one step.
type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new user account with is_admin=false.
// Returns apperror.ErrConflict if the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "email is not valid")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", "password is too long")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login verifies credentials and mints a new session.
//
// Every login creates its own session row — a user can be signed in from
// several browsers at once. Any failure, whether the email is unknown or the
// password wrong, returns the same generic Unauthenticated error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials
		}
		s.logger.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, invalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to create session",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("logging in: %w", err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout deletes the session identified by token. Unknown tokens are a
// no-op — logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		s.logger.Error("failed to delete session", slog.String("error", err.Error()))
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to an identity.
//
// Fails with Unauthenticated when the token is empty, unknown, or expired.
// Expiry uses strictly-after semantics: a session is rejected only once the
// current time has passed ExpiresAt. The check happens here on every call —
// validity is never cached.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("no session")
	}

	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthenticated) {
			return nil, err
		}
		s.logger.Error("failed to look up session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, apperror.Unauthenticated("session expired")
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Session points at a user that no longer exists.
			return nil, apperror.Unauthenticated("invalid session")
		}
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	return &model.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
