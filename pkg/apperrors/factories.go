package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors and predefined domain errors.

// ErrNotFound converts a repository not-found error (e.g. gorm.ErrRecordNotFound
// or a repo sentinel) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 409 for state-machine violations.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Listings & moderation ---

var ErrListingNotApproved = New(
	CodeForbidden,
	"listing",
	"Listing has not been approved yet",
	http.StatusForbidden,
)

var ErrListingAlreadyModerated = New(
	CodeInvalidStatus,
	"moderation",
	"Listing has already been moderated",
	http.StatusConflict,
)

// --- Bookings ---

var ErrBookingAccessDenied = New(
	CodeForbidden,
	"booking",
	"Access to this booking is denied",
	http.StatusForbidden,
)

var ErrOwnListingBooking = New(
	CodeInvalidOperation,
	"booking",
	"You cannot book your own listing",
	http.StatusBadRequest,
)

// --- Partners ---

var ErrPartnerApplicationPending = New(
	CodeAlreadyExists,
	"partner",
	"A partner application is already pending for this user",
	http.StatusConflict,
)

var ErrPartnerApplicationDecided = New(
	CodeInvalidStatus,
	"partner",
	"Partner application has already been decided",
	http.StatusConflict,
)
