package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"tourbook/internal/auth"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
)

type stubUserLoader struct {
	user *models.User
}

func (s *stubUserLoader) FindActiveByID(db *gorm.DB, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repositories.ErrNotFound
	}
	return s.user, nil
}

func authTestRouter(tokens *auth.TokenService, users UserLoader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DB(nil)) // the stub loader never touches the handle
	chain := append([]gin.HandlerFunc{Authenticate(tokens, users)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticateMissingToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := authTestRouter(tokens, &stubUserLoader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"fail"`)
}

func TestAuthenticateBearerToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Role: models.UserRoleUser, Active: true}
	r := authTestRouter(tokens, &stubUserLoader{user: user})

	token, _ := tokens.Issue("u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestAuthenticateCookieToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Role: models.UserRoleUser, Active: true}
	r := authTestRouter(tokens, &stubUserLoader{user: user})

	token, _ := tokens.Issue("u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := authTestRouter(tokens, &stubUserLoader{})

	token, _ := tokens.Issue("ghost")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateStaleToken(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)

	changed := time.Now().Add(time.Hour)
	user := &models.User{
		BaseModel:         models.BaseModel{ID: "u-1"},
		Role:              models.UserRoleUser,
		Active:            true,
		PasswordChangedAt: &changed,
	}
	r := authTestRouter(tokens, &stubUserLoader{user: user})

	token, _ := tokens.Issue("u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Role: models.UserRoleUser, Active: true}
	r := authTestRouter(tokens, &stubUserLoader{user: user},
		RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide))

	token, _ := tokens.Issue("u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Role: models.UserRoleAdmin, Active: true}
	r := authTestRouter(tokens, &stubUserLoader{user: user},
		RequireRoles(models.UserRoleAdmin))

	token, _ := tokens.Issue("u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService("secret", time.Hour)

	r := gin.New()
	r.Use(DB(nil))
	r.GET("/open", OptionalAuth(tokens, &stubUserLoader{}), func(c *gin.Context) {
		assert.Nil(t, CurrentUser(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthResolvesPresentedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService("secret", time.Hour)
	user := &models.User{BaseModel: models.BaseModel{ID: "u-7"}, Role: models.UserRoleUser, Active: true}

	r := gin.New()
	r.Use(DB(nil))
	r.GET("/open", OptionalAuth(tokens, &stubUserLoader{user: user}), func(c *gin.Context) {
		current := CurrentUser(c)
		if assert.NotNil(t, current) {
			assert.Equal(t, "u-7", current.ID)
		}
		c.Status(http.StatusOK)
	})

	token, _ := tokens.Issue("u-7")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
