package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourbook/internal/logger"
	"tourbook/internal/middleware"
	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/validator"
	"tourbook/pkg/apperrors"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB extracts the request's database handle set by middleware.DB.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	return middleware.MustDB(c)
}

// BindAndValidate binds the JSON body and runs struct validation. On failure
// the error response is already written and false is returned.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.validator.Validate(obj); err != nil {
		h.respondValidation(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) respondValidation(c *gin.Context, err error) {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(c.Request.Context(), "validation failed",
			"errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		return
	}
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// HandleServiceError funnels service and repository errors into the common
// response shape.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		apperrors.HandleError(c, apperrors.NotFound(""))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apperrors.HandleError(c, apperrors.AlreadyExists("Duplicate field value"))
	default:
		apperrors.HandleError(c, err)
	}
}

// CurrentUser returns the authenticated user, responding 401 when absent.
func (h *BaseHandler) CurrentUser(c *gin.Context) (*models.User, bool) {
	u := middleware.CurrentUser(c)
	if u == nil {
		apperrors.HandleError(c, apperrors.ErrNotLoggedIn)
		return nil, false
	}
	return u, true
}

// Success writes the standard success envelope.
func (h *BaseHandler) Success(c *gin.Context, httpCode int, data interface{}) {
	c.JSON(httpCode, gin.H{
		"status": "success",
		"data":   data,
	})
}

// SuccessList writes a list envelope including the result count.
func (h *BaseHandler) SuccessList(c *gin.Context, key string, items interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": count,
		"data":    gin.H{key: items},
	})
}

// NoContent writes the empty 204 envelope used by deletes.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.JSON(http.StatusNoContent, gin.H{
		"status": "success",
		"data":   nil,
	})
}
