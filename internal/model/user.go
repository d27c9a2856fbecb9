// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered customer account.
//
// PasswordHash carries the bcrypt output ($2a$12$...), which embeds its own
// salt and cost. The `json:"-"` tag keeps it out of every API response —
// the hash must never leave the server, not even to admins.
//
// IsAdmin is never settable through the API. It is flipped out-of-band by the
// seeding tool (cmd/seed), and the product/post patch types deliberately have
// no field that could reach the users table.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the result of authenticating a session token.
// It is what handlers see — they never touch the raw User row.
type Identity struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
