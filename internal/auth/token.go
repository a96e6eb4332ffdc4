package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is what a verified session token resolves to.
type TokenClaims struct {
	UserID   string
	IssuedAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. Invalidation relies
// solely on expiry and the password-changed-after check in the middleware;
// there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed, time-limited token embedding the user id and the
// issuance time.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns its claims. Fails with ErrInvalidToken
// when the signature does not check out or the token expired.
func (s *TokenService) Verify(tokenStr string) (*TokenClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return &TokenClaims{
		UserID:   claims.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}
