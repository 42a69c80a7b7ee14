package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	ListingHandler      *ListingHandler
	BookingHandler      *BookingHandler
	PartnerHandler      *PartnerHandler
	NotificationHandler *NotificationHandler
}
