package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/services"
	"tourbook/internal/services/dto"
	"tourbook/pkg/apperrors"
)

type BookingHandler struct {
	*ResourceHandler[models.Booking]
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookings *repositories.BookingRepository, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		ResourceHandler: NewResourceHandler(base, bookings.Resource, "booking", "bookings"),
		bookingService:  bookingService,
	}
}

// GetCheckoutSession prepares a payment session for the tour and returns the
// redirect URL.
func (h *BookingHandler) GetCheckoutSession(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host
	successURL := base + "/my-tours"
	cancelURL := base + "/tour/" + c.Param("tourId")

	session, err := h.bookingService.CreateCheckoutSession(
		h.GetDB(c), c.Param("tourId"), user, successURL, cancelURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"session": session,
	})
}

// Webhook receives the payment gateway callback and records the booking.
// Unauthenticated; trust comes from the signature.
func (h *BookingHandler) Webhook(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid webhook payload"))
		return
	}

	if err := h.bookingService.HandleWebhook(h.GetDB(c), c.Request.PostForm); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// MyTours lists the tours the session user has booked.
func (h *BookingHandler) MyTours(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	tours, err := h.bookingService.MyTours(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.SuccessList(c, "tours", tours, len(tours))
}

// CreateOne is the admin-facing manual booking create.
func (h *BookingHandler) CreateOne(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	booking := &models.Booking{
		TourID: req.Tour,
		UserID: req.User,
		Price:  req.Price,
		Paid:   req.Paid,
	}
	if err := h.resource.Create(h.GetDB(c), booking); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, gin.H{"booking": booking})
}
