package auth

import (
	"context"
	"time"
)

// Claims holds the validated claims extracted from an access token.
type Claims struct {
	// Subject identifies the calling back-office client.
	Subject string

	// TokenType is the token's declared type; always "access" after a
	// successful validation.
	TokenType string

	// ExpiresAt is when the token stops being valid.
	ExpiresAt time.Time
}

// JWTService validates bearer tokens presented by callers.
type JWTService interface {
	// GenerateToken creates a signed access token for the given subject.
	// Primarily used by operational tooling and tests; production tokens
	// are issued by the surrounding platform with the same shared secret.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken verifies a token's signature, expiry, and type, and
	// returns its claims. Returns ErrInvalidToken, ErrExpiredToken,
	// ErrTokenNotYetValid, or ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
