package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session stores a refresh token. Only the SHA-256 hash of the raw token is
// persisted; the raw value lives solely with the client.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
}
