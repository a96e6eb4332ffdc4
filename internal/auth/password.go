package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the rest of the system was provisioned with.
// Changing it only affects newly hashed passwords.
const bcryptCost = 12

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 10 * time.Minute

// HashPassword creates a bcrypt digest of the plaintext password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword verifies a plaintext password against a stored digest.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

// NewResetToken generates a random reset token. The plaintext goes out by
// mail; only the digest is ever persisted.
func NewResetToken() (plain, digest string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

// ResetTokenExpiry is the moment a token issued now stops working.
func ResetTokenExpiry() time.Time {
	return time.Now().Add(ResetTokenTTL)
}

// HashResetToken maps a plaintext reset token to its stored digest.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
