package models

type Review struct {
	BaseModel
	Rating int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"required,min=1,max=5"`
	Review string `gorm:"not null" json:"review" validate:"required"`

	// One review per (tour, user) pair.
	TourID string `gorm:"not null;uniqueIndex:idx_reviews_tour_user,priority:1" json:"tour" validate:"required"`
	UserID string `gorm:"not null;uniqueIndex:idx_reviews_tour_user,priority:2" json:"user" validate:"required"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// DefaultRatingsAverage is what a tour falls back to when its last review is
// removed.
const DefaultRatingsAverage = 4.5
