package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/pkg/apperrors"
)

// ReviewHandler serves reviews both standalone and nested under a tour.
type ReviewHandler struct {
	*ResourceHandler[models.Review]
}

func NewReviewHandler(base *BaseHandler, reviews *repositories.ReviewRepository) *ReviewHandler {
	h := &ReviewHandler{
		ResourceHandler: NewResourceHandler(base, reviews.Resource, "review", "reviews"),
	}
	// On the nested route /tours/:id/reviews the :id param is the tour.
	// The flat listing and create routes carry no path param at all.
	h.BaseFilter = func(c *gin.Context) map[string]interface{} {
		if tourID := c.Param("id"); tourID != "" {
			return map[string]interface{}{"tour_id": tourID}
		}
		return nil
	}
	return h
}

// CreateOne writes a review. The tour comes from the nested route (or the
// body on the flat route) and the author is always the session user.
func (h *ReviewHandler) CreateOne(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
		return
	}
	if tourID := c.Param("id"); tourID != "" {
		review.TourID = tourID
	}
	review.UserID = user.ID
	review.ID = ""

	if !h.validate(c, &review) {
		return
	}

	if err := h.resource.Create(h.GetDB(c), &review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperrors.HandleError(c, apperrors.ErrDuplicateReview)
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, gin.H{"review": &review})
}
