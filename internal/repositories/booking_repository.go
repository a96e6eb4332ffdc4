package repositories

import (
	"gorm.io/gorm"

	"tourbook/internal/models"
)

type BookingRepository struct {
	*Resource[models.Booking]
}

func NewBookingRepository() *BookingRepository {
	res := NewResource[models.Booking]("id")
	res.Preloads = []string{"Tour"}
	return &BookingRepository{Resource: res}
}

// FindByUser lists a customer's bookings, tour included, newest first.
func (r *BookingRepository) FindByUser(db *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("Tour").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// Exists reports whether the user already booked the tour.
func (r *BookingRepository) Exists(db *gorm.DB, tourID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("tour_id = ? AND user_id = ?", tourID, userID).
		Count(&count).Error
	return count > 0, err
}
