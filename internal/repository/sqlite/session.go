package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// compile-time check that *DB implements repository.SessionRepository
var _ repository.SessionRepository = (*DB)(nil)

// CreateSession persists a new session row. The token is the primary key;
// with 256 bits of randomness a collision is not a case worth handling.
func (db *DB) CreateSession(ctx context.Context, session *model.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		session.Token,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting session for user %d: %w", session.UserID, err)
	}
	return nil
}

// GetSessionByToken returns the session row as stored. Expiry is checked by
// the authenticator at validation time, never here — the row itself carries
// no notion of "still valid".
func (db *DB) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session

	err := db.conn.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, expires_at
		 FROM sessions WHERE token = ?`,
		token,
	).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.Unauthenticated("invalid session")
		}
		return nil, fmt.Errorf("sqlite: getting session: %w", err)
	}

	return &s, nil
}

// DeleteSession removes a session row. Deleting an unknown token is a no-op
// so logout stays idempotent.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = ?`, token,
	); err != nil {
		return fmt.Errorf("sqlite: deleting session: %w", err)
	}
	return nil
}
