package services

import (
	"tourbook/internal/auth"
	"tourbook/internal/email"
	"tourbook/internal/payment"
	"tourbook/internal/repositories"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	TourService    TourService
	BookingService BookingService
}

// Repositories groups the table accessors so wiring stays in one place.
type Repositories struct {
	Users    *repositories.UserRepository
	Tours    *repositories.TourRepository
	Reviews  *repositories.ReviewRepository
	Bookings *repositories.BookingRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:    repositories.NewUserRepository(),
		Tours:    repositories.NewTourRepository(),
		Reviews:  repositories.NewReviewRepository(),
		Bookings: repositories.NewBookingRepository(),
	}
}

func NewServiceContainer(repos *Repositories, tokens *auth.TokenService, mailer email.Mailer, provider *payment.Provider) *ServiceContainer {
	return &ServiceContainer{
		AuthService:    NewAuthService(repos.Users, tokens, mailer),
		UserService:    NewUserService(repos.Users),
		TourService:    NewTourService(repos.Tours),
		BookingService: NewBookingService(repos.Bookings, repos.Tours, provider),
	}
}
