package dto

import "time"

type GeoPointInput struct {
	Lat         float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
}

type LocationInput struct {
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"gte=-180,lte=180"`
	Description string  `json:"description"`
	Day         int     `json:"day"`
}

// CreateTourRequest carries a full tour, itinerary and schedule included.
type CreateTourRequest struct {
	Name          string          `json:"name" validate:"required,min=10,max=40"`
	Duration      int             `json:"duration" validate:"required,gt=0"`
	MaxGroupSize  int             `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty    string          `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price         float64         `json:"price" validate:"required,gt=0"`
	PriceDiscount float64         `json:"priceDiscount" validate:"omitempty,gt=0,ltfield=Price"`
	Summary       string          `json:"summary" validate:"required"`
	Description   string          `json:"description"`
	ImageCover    string          `json:"imageCover"`
	Secret        bool            `json:"secretTour"`
	StartLocation GeoPointInput   `json:"startLocation"`
	StartDates    []time.Time     `json:"startDates" validate:"dive"`
	Locations     []LocationInput `json:"locations" validate:"dive"`
	Guides        []string        `json:"guides"`
}

// UpdateTourRequest is a partial tour edit: nil means "leave unchanged",
// including the association slices.
type UpdateTourRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=10,max=40"`
	Duration      *int             `json:"duration" validate:"omitempty,gt=0"`
	MaxGroupSize  *int             `json:"maxGroupSize" validate:"omitempty,gt=0"`
	Difficulty    *string          `json:"difficulty" validate:"omitempty,oneof=easy medium difficult"`
	Price         *float64         `json:"price" validate:"omitempty,gt=0"`
	PriceDiscount *float64         `json:"priceDiscount" validate:"omitempty,gt=0"`
	Summary       *string          `json:"summary" validate:"omitempty,min=1"`
	Description   *string          `json:"description"`
	ImageCover    *string          `json:"imageCover"`
	Secret        *bool            `json:"secretTour"`
	StartLocation *GeoPointInput   `json:"startLocation"`
	StartDates    *[]time.Time     `json:"startDates"`
	Locations     *[]LocationInput `json:"locations" validate:"omitempty,dive"`
	Guides        *[]string        `json:"guides"`
}
