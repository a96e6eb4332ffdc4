package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tourbook/internal/imageprocessor"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/services/dto"
	"tourbook/pkg/apperrors"
)

// UserHandler serves the admin user CRUD plus the /me self-service routes.
type UserHandler struct {
	*ResourceHandler[models.User]
	userService services.UserService
	uploads     *Uploads
}

func NewUserHandler(base *BaseHandler, users *repositories.UserRepository, userService services.UserService, uploads *Uploads) *UserHandler {
	return &UserHandler{
		ResourceHandler: NewResourceHandler(base, users.Resource, "user", "users"),
		userService:     userService,
		uploads:         uploads,
	}
}

// GetMe returns the authenticated account.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	h.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateMe edits name, email and photo of the authenticated account.
// Password changes are rejected here and pointed at their own route.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateMeRequest
	var photoFilename string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if c.PostForm("password") != "" || c.PostForm("passwordConfirm") != "" {
			apperrors.HandleError(c, apperrors.ErrPasswordUpdateNotAllowed)
			return
		}
		if err := c.ShouldBind(&req); err != nil {
			apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
			return
		}

		if fh, err := c.FormFile("photo"); err == nil {
			name := fmt.Sprintf("user-%s-%d", user.ID, time.Now().UnixMilli())
			photoFilename, err = h.uploads.SaveImage(c, fh, imageprocessor.SizeUserPhoto, "img/users", name)
			if err != nil {
				apperrors.HandleError(c, err)
				return
			}
		}
	} else {
		raw := map[string]json.RawMessage{}
		body, err := c.GetRawData()
		if err != nil || json.Unmarshal(body, &raw) != nil {
			apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
			return
		}
		if _, ok := raw["password"]; ok {
			apperrors.HandleError(c, apperrors.ErrPasswordUpdateNotAllowed)
			return
		}
		if _, ok := raw["passwordConfirm"]; ok {
			apperrors.HandleError(c, apperrors.ErrPasswordUpdateNotAllowed)
			return
		}
		if err := json.Unmarshal(body, &req); err != nil {
			apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
			return
		}
	}

	if !h.validate(c, &req) {
		return
	}

	updated, err := h.userService.UpdateMe(h.GetDB(c), user.ID, &req, photoFilename)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{"user": updated})
}

// DeleteMe deactivates the authenticated account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteMe(h.GetDB(c), user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateOne is intentionally not wired for users; accounts come from signup.
func (h *UserHandler) CreateOne(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "This route is not defined! Please use /signup instead",
	})
}
