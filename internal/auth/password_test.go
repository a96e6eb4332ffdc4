package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCheck(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)

	assert.True(t, CheckPassword("pass1234", hash))
	assert.False(t, CheckPassword("wrongpass", hash))
	assert.False(t, CheckPassword("pass1234", "not-a-bcrypt-hash"))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}

func TestResetToken(t *testing.T) {
	t.Parallel()

	plain, digest, err := NewResetToken()
	require.NoError(t, err)

	// 32 random bytes, hex encoded
	assert.Len(t, plain, 64)
	// sha256 digest, hex encoded
	assert.Len(t, digest, 64)
	assert.NotEqual(t, plain, digest)

	// the digest must be reproducible from the plaintext alone
	assert.Equal(t, digest, HashResetToken(plain))

	// and tokens must not repeat
	plain2, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}

func TestResetTokenExpiry(t *testing.T) {
	t.Parallel()

	expiry := ResetTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), expiry, time.Second)
}
