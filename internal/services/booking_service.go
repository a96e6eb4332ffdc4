package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourbook/internal/logger"
	"tourbook/internal/models"
	"tourbook/internal/payment"
	"tourbook/internal/repositories"
	"tourbook/pkg/apperrors"
)

type BookingService interface {
	CreateCheckoutSession(db *gorm.DB, tourID string, user *models.User, successURL, cancelURL string) (*payment.Session, error)
	HandleWebhook(db *gorm.DB, form url.Values) error
	MyTours(db *gorm.DB, userID string) ([]models.Tour, error)
}

type BookingServiceImpl struct {
	bookingRepo *repositories.BookingRepository
	tourRepo    *repositories.TourRepository
	provider    *payment.Provider
}

func NewBookingService(bookingRepo *repositories.BookingRepository, tourRepo *repositories.TourRepository, provider *payment.Provider) BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		provider:    provider,
	}
}

// CreateCheckoutSession prepares a hosted checkout for the tour at its
// current price. The booking is only written once the gateway calls back.
func (s *BookingServiceImpl) CreateCheckoutSession(db *gorm.DB, tourID string, user *models.User, successURL, cancelURL string) (*payment.Session, error) {
	tour, err := s.tourRepo.FindByID(db, tourID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("")
		}
		return nil, apperrors.InternalError(err)
	}

	session := s.provider.CreateSession(
		uuid.NewString(),
		tour.ID,
		user.ID,
		tour.Price,
		fmt.Sprintf("%s Tour", tour.Name),
		successURL,
		cancelURL,
	)
	return session, nil
}

// HandleWebhook verifies a gateway callback and records the paid booking.
// Replays of the same session are ignored.
func (s *BookingServiceImpl) HandleWebhook(db *gorm.DB, form url.Values) error {
	event, err := s.provider.VerifyWebhook(form)
	if err != nil {
		return apperrors.BadRequest("Webhook verification failed")
	}

	exists, err := s.bookingRepo.Exists(db, event.TourID, event.CustomerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		logger.Info("duplicate checkout webhook ignored",
			"session_id", event.SessionID,
			"tour_id", event.TourID,
		)
		return nil
	}

	booking := &models.Booking{
		TourID: event.TourID,
		UserID: event.CustomerID,
		Price:  event.Amount,
		Paid:   true,
	}
	if err := s.bookingRepo.Create(db, booking); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MyTours lists the tours the user has booked.
func (s *BookingServiceImpl) MyTours(db *gorm.DB, userID string) ([]models.Tour, error) {
	bookings, err := s.bookingRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tours := make([]models.Tour, 0, len(bookings))
	for _, b := range bookings {
		if b.Tour != nil {
			tours = append(tours, *b.Tour)
		}
	}
	return tours, nil
}
