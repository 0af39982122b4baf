package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "test-issuer",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestJWTService()

	tok, err := svc.Issue("sid-1", "lan", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.ExpiresAt, 2*time.Second)

	claims, err := svc.Validate(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "lan", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueCapsExpiryAtSession(t *testing.T) {
	svc := newTestJWTService()
	sessionEnd := time.Now().Add(5 * time.Minute)

	tok, err := svc.Issue("sid-1", "lan", sessionEnd)
	require.NoError(t, err)
	assert.Equal(t, sessionEnd, tok.ExpiresAt)
}

func TestValidateRejects(t *testing.T) {
	svc := newTestJWTService()

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-of-32-characters", Issuer: "test-issuer", AccessTokenExpiration: time.Minute})
		tok, err := other.Issue("sid", "u", time.Time{})
		require.NoError(t, err)
		_, err = svc.Validate(tok.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := svc.Issue("sid", "u", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		_, err = svc.Validate(tok.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("missing sid", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)
		_, err = svc.Validate(tok)
		assert.ErrorIs(t, err, ErrMissingSessionID)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "someone-else", AccessTokenExpiration: time.Minute})
		tok, err := other.Issue("sid", "u", time.Time{})
		require.NoError(t, err)
		_, err = svc.Validate(tok.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
