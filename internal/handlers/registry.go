package handlers

import (
	"tourbook/internal/services"
	"tourbook/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Tour    *TourHandler
	Review  *ReviewHandler
	Booking *BookingHandler
	Health  *HealthHandler
}

func NewAppHandlers(
	svcs *services.ServiceContainer,
	repos *services.Repositories,
	v *validator.Validator,
	uploads *Uploads,
) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:    NewAuthHandler(base, svcs.AuthService),
		User:    NewUserHandler(base, repos.Users, svcs.UserService, uploads),
		Tour:    NewTourHandler(base, repos.Tours, svcs.TourService, uploads),
		Review:  NewReviewHandler(base, repos.Reviews),
		Booking: NewBookingHandler(base, repos.Bookings, svcs.BookingService),
		Health:  NewHealthHandler(),
	}
}
