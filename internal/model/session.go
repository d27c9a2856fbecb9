package model

import "time"

// Session is a server-side login session. The token is opaque and
// cryptographically random — owning it is the sole proof of identity, so it
// is the primary key and never reused. A user may hold several sessions at
// once (one per login); logout deletes exactly one row.
//
// Expiry is evaluated at authentication time against ExpiresAt. Rows past
// their expiry are simply treated as invalid; there is no background sweeper.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
