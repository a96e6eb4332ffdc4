package models

type Booking struct {
	BaseModel
	TourID string  `gorm:"not null;index" json:"tour" validate:"required"`
	UserID string  `gorm:"not null;index" json:"user" validate:"required"`
	Price  float64 `gorm:"not null" json:"price" validate:"required,gt=0"`
	Paid   bool    `gorm:"not null;default:true" json:"paid"`

	// Bookings go with their tour. Retired tours are hidden via the secret
	// flag rather than deleted, so a hard delete is an explicit purge.
	Tour *Tour `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"tourDetails,omitempty"`
}
