// Package authtest signs bearer tokens for tests of authenticated routes.
package authtest

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sign returns an HS256 token for subject that expires after ttl.
func Sign(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
