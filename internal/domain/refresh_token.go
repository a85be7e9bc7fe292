package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/famtree-app/auth-service/api/user"
)

// RefreshToken is one outstanding long-lived credential. At most one row
// exists per user; saving a new one supersedes the old.
type RefreshToken struct {
	ID        int64
	UserID    user.ID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashRefreshToken returns the hex SHA-256 digest of the raw refresh token.
// Only the digest is ever persisted; the bearer-usable value stays with the
// client.
func HashRefreshToken(tokenValue string) string {
	sum := sha256.Sum256([]byte(tokenValue))
	return hex.EncodeToString(sum[:])
}
