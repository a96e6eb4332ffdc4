package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourbook/internal/auth"
	"tourbook/internal/logger"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/pkg/apperrors"
	"tourbook/pkg/contextkeys"
)

// SessionCookieName is where the session token travels for browser clients.
// API clients use the Authorization header.
const SessionCookieName = "jwt"

// UserLoader resolves a verified token subject to its account. Deactivated
// accounts must not resolve.
type UserLoader interface {
	FindActiveByID(db *gorm.DB, id string) (*models.User, error)
}

// extractToken reads the bearer token, falling back to the session cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// resolveUser runs the full token-to-account chain: verify signature and
// expiry, load the account, reject tokens minted before the last password
// change.
func resolveUser(c *gin.Context, tokens *auth.TokenService, users UserLoader) (*models.User, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, apperrors.ErrNotLoggedIn
	}

	claims, err := tokens.Verify(tokenStr)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := users.FindActiveByID(MustDB(c), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserGone
		}
		return nil, apperrors.InternalError(err)
	}

	if user.PasswordChangedAfter(claims.IssuedAt) {
		return nil, apperrors.ErrStaleToken
	}
	return user, nil
}

// Authenticate guards a route group: requests without a valid session are
// rejected with 401 and the resolved user is stored for handlers downstream.
func Authenticate(tokens *auth.TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, tokens, users)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.CurrentUserKey), user)
		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth resolves the current user when a valid session is present and
// stays silent otherwise. Rendering routes use it.
func OptionalAuth(tokens *auth.TokenService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, tokens, users); err == nil {
			c.Set(string(contextkeys.CurrentUserKey), user)
			ctx := logger.WithUserID(c.Request.Context(), user.ID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireRoles allows only the named roles past. Must run after Authenticate.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !allowed[user.Role] {
			apperrors.HandleError(c, apperrors.Forbidden(""))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(string(contextkeys.CurrentUserKey))
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
