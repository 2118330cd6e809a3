package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "partnerdesk/pkg/domain-errors"
)

// Claims are the registry token claims the client cares about. The client
// never verifies the signature (it has no key and no business doing so); it
// only reads identity and expiry for display and session restore.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ParseClaims reads a registry bearer token without verification.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "malformed token")
	}
	return claims, nil
}

// Expired reports whether the token's expiry has passed at the given time.
// Tokens without an expiry are treated as expired: the registry always sets
// one.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return now.After(c.ExpiresAt.Time)
}
