package validator

import (
	"log"

	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain value rules. Registration failure
// is a startup defect, so it is fatal.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-booking-status", validateBookingStatus)
	mustRegister("is-listing-category", validateListingCategory)
	mustRegister("is-notification-type", validateNotificationType)
}

// Empty values pass every rule; 'required' covers presence.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRolePerformer:
		return true
	default:
		// Admin is never accepted from request bodies.
		return false
	}
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BookingStatus(value) {
	case models.BookingStatusAccepted, models.BookingStatusDeclined,
		models.BookingStatusCancelled, models.BookingStatusCompleted:
		return true
	default:
		// Pending is the initial state, never a requested transition.
		return false
	}
}

func validateListingCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ListingCategory(value) {
	case models.ListingCategoryPhotographer, models.ListingCategoryDJ,
		models.ListingCategoryHost, models.ListingCategoryCaterer,
		models.ListingCategoryMusician, models.ListingCategoryDecorator:
		return true
	default:
		return false
	}
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case repositories.NotificationTypeBookingRequest,
		repositories.NotificationTypeBookingStatus,
		repositories.NotificationTypeModerationResult,
		repositories.NotificationTypePartnerResult,
		repositories.NotificationTypeSystem:
		return true
	default:
		return false
	}
}
