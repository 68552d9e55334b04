// Package auth provides JWT validation for back-office callers. Tokens are
// issued by the surrounding platform; this service only verifies them.
package auth

import "errors"

// Token validation errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before claim is in
	// the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrWrongTokenType is returned when a token is valid but not an access
	// token.
	ErrWrongTokenType = errors.New("wrong token type")
)
