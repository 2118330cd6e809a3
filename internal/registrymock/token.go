package registrymock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"partnerdesk/internal/account"
	dErrors "partnerdesk/pkg/domain-errors"
)

const tokenLifetime = 24 * time.Hour

// issueToken mints an HS256 bearer token for an authenticated user.
func (s *Server) issueToken(user account.User, now time.Time) (string, error) {
	claims := &account.Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verifyToken validates signature and expiry and returns the claims.
func (s *Server) verifyToken(raw string) (*account.Claims, error) {
	claims := &account.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
