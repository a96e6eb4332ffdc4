package models

import (
	"time"

	"gorm.io/datatypes"
)

type TourDifficulty string

const (
	DifficultyEasy      TourDifficulty = "easy"
	DifficultyMedium    TourDifficulty = "medium"
	DifficultyDifficult TourDifficulty = "difficult"
)

// GeoPoint is an embedded start location. Coordinates are stored as plain
// columns so distance math stays in SQL.
type GeoPoint struct {
	Lat         float64 `gorm:"column:lat" json:"lat"`
	Lng         float64 `gorm:"column:lng" json:"lng"`
	Address     string  `gorm:"column:address" json:"address,omitempty"`
	Description string  `gorm:"column:description" json:"description,omitempty"`
}

type Tour struct {
	BaseModel
	Name       string         `gorm:"uniqueIndex;not null" json:"name" validate:"required,min=10,max=40"`
	Slug       string         `gorm:"index" json:"slug"`
	Duration   int            `gorm:"not null" json:"duration" validate:"required,gt=0"`
	MaxGroup   int            `gorm:"column:max_group_size;not null" json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty TourDifficulty `gorm:"type:varchar(20);not null" json:"difficulty" validate:"required,oneof=easy medium difficult"`

	// Derived from reviews, never client-set.
	RatingsAverage  float64 `gorm:"not null;default:4.5;index:idx_tours_rating_price,priority:1" json:"ratingsAverage"`
	RatingsQuantity int64   `gorm:"not null;default:0" json:"ratingsQuantity"`

	Price         float64 `gorm:"not null;index:idx_tours_rating_price,priority:2" json:"price" validate:"required,gt=0"`
	PriceDiscount float64 `json:"priceDiscount,omitempty" validate:"omitempty,gt=0,ltfield=Price"`

	Summary     string `gorm:"not null" json:"summary" validate:"required"`
	Description string `json:"description,omitempty"`
	ImageCover  string `json:"imageCover"`

	// Gallery filenames as a JSON document column.
	Images datatypes.JSON `json:"images,omitempty" validate:"-"`

	// Secret tours are excluded from all read queries.
	Secret bool `gorm:"not null;default:false" json:"-"`

	StartLocation GeoPoint `gorm:"embedded;embeddedPrefix:start_" json:"startLocation"`

	Locations  []TourLocation  `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
	StartDates []TourStartDate `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"startDates,omitempty"`
	Guides     []User          `gorm:"many2many:tour_guides" json:"guides,omitempty"`

	Reviews []Review `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// TourLocation is a waypoint on the tour itinerary.
type TourLocation struct {
	BaseModel
	TourID      string  `gorm:"not null;index" json:"-"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description,omitempty"`
	Day         int     `json:"day"`
}

// TourStartDate is one scheduled departure. Rows rather than a JSON array so
// the monthly plan aggregates in SQL.
type TourStartDate struct {
	BaseModel
	TourID    string    `gorm:"not null;index" json:"-"`
	StartDate time.Time `gorm:"not null;index" json:"startDate"`
}
