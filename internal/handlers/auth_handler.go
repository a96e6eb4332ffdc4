package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/config"
	"tourbook/internal/services"
	"tourbook/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// setSessionCookie mirrors the issued token into an http-only cookie for
// browser clients.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	cfg := config.GetConfig()
	maxAge := cfg.JWT.CookieDays * 24 * 60 * 60
	c.SetCookie("jwt", token, maxAge, "/", "", cfg.JWT.SecureCookie, true)
}

func (h *AuthHandler) respondAuth(c *gin.Context, httpCode int, resp *dto.AuthResponse) {
	h.setSessionCookie(c, resp.Token)
	c.JSON(httpCode, gin.H{
		"status": "success",
		"token":  resp.Token,
		"data":   gin.H{"user": resp.User},
	})
}

// Signup godoc
// @Summary Create an account and log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Account details"
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/users/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Signup(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondAuth(c, http.StatusCreated, resp)
}

// Login godoc
// @Summary Exchange credentials for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondAuth(c, http.StatusOK, resp)
}

// Logout clears the session cookie. Bearer clients just drop their token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("jwt", "loggedout", 10, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ForgotPassword mails a reset link to the account's address.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	resetURLBase := fmt.Sprintf("%s://%s/api/v1/users/resetPassword", scheme, c.Request.Host)

	if err := h.authService.ForgotPassword(h.GetDB(c), req.Email, resetURLBase); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token sent to email!",
	})
}

// ResetPassword consumes the mailed token and sets a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.ResetPassword(h.GetDB(c), c.Param("token"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondAuth(c, http.StatusOK, resp)
}

// UpdatePassword changes the logged-in user's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.UpdatePassword(h.GetDB(c), user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.respondAuth(c, http.StatusOK, resp)
}
