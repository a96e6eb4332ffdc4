package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("secret-a", time.Hour).Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tokenStr)
	}
}
