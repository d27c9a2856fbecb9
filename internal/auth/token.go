package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionToken returns an opaque session token: 32 bytes from crypto/rand,
// hex-encoded (64 characters, 256 bits of entropy).
//
// Owning this token is the sole proof of identity, so it must be unguessable;
// math/rand or timestamps are never acceptable here. With 256 bits the chance
// of a collision with an existing token is not worth handling.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
