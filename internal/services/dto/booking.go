package dto

import "tourbook/internal/payment"

// CheckoutSessionResponse wraps the prepared payment session for the client
// redirect.
type CheckoutSessionResponse struct {
	Session *payment.Session `json:"session"`
}

// CreateBookingRequest is the admin-facing manual booking create.
type CreateBookingRequest struct {
	Tour  string  `json:"tour" validate:"required"`
	User  string  `json:"user" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Paid  bool    `json:"paid"`
}
