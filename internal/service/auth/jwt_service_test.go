package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintally/account-api/internal/config"
)

const testSecret = "thisisaverylongsecretkeyforjwttests1234"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{JWTSecret: "tooshort"})
		assert.Error(t, err)
	})

	t.Run("accepts a 32+ character secret", func(t *testing.T) {
		_, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
		assert.NoError(t, err)
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken(ctx, "batch-processor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "batch-processor", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.False(t, claims.ExpiresAt.IsZero())
}

func TestJWTService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	// Issue a token in the past, far enough back that the lifetime plus the
	// clock skew allowance has elapsed.
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, "batch-processor")
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSigningKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret: "anothercompletelydifferentsecretkey0000",
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, "batch-processor")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongTokenType(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	// Hand-craft a token with a non-access type but a valid signature.
	now := time.Now()
	claims := jwtCustomClaims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "batch-processor",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_MalformedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
