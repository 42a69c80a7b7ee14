package services

import (
	"eventomir_backend/internal/email"
	"eventomir_backend/internal/repositories"
)

// ServiceContainer wires every service once at startup so handlers share a
// single graph of dependencies.
type ServiceContainer struct {
	Auth          AuthService
	Listings      ListingService
	Bookings      BookingService
	Partners      PartnerService
	Notifications NotificationService
}

type RepositorySet struct {
	Users         repositories.UserRepository
	Listings      repositories.ListingRepository
	Bookings      repositories.BookingRepository
	Partners      repositories.PartnerRepository
	Notifications repositories.NotificationRepository
}

func NewServiceContainer(repos RepositorySet, emailProvider email.Provider, emitter RealtimeEmitter) *ServiceContainer {
	notifications := NewNotificationService(repos.Notifications, repos.Users, emitter)

	return &ServiceContainer{
		Auth:          NewAuthService(repos.Users, repos.Partners, emailProvider),
		Listings:      NewListingService(repos.Listings, repos.Users, notifications),
		Bookings:      NewBookingService(repos.Bookings, repos.Listings, repos.Users, notifications),
		Partners:      NewPartnerService(repos.Partners, repos.Users, notifications),
		Notifications: notifications,
	}
}
