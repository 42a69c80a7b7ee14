package services

import (
	"fmt"

	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"
)

type BookingService interface {
	CreateBooking(customerID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateStatus(userID, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	GetBooking(userID, bookingID string) (*dto.BookingResponse, error)
	ListUserBookings(userID string) (*dto.BookingListResponse, error)
}

type bookingService struct {
	bookingRepo   repositories.BookingRepository
	listingRepo   repositories.ListingRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *bookingService) CreateBooking(customerID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	listing, err := s.listingRepo.FindByID(req.ListingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if listing.Status != models.ModerationStatusApproved {
		return nil, apperrors.ErrListingNotApproved
	}
	if listing.PerformerID == customerID {
		return nil, apperrors.ErrOwnListingBooking
	}

	booking := &models.Booking{
		CustomerID:  customerID,
		PerformerID: listing.PerformerID,
		ListingID:   listing.ID,
		EventDate:   req.EventDate,
		Message:     req.Message,
		Status:      models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	customer, err := s.userRepo.FindByID(customerID)
	customerName := "A customer"
	if err == nil {
		customerName = customer.Name
	}

	// The booking exists whether or not the performer hears about it live.
	if err := s.notifications.NotifyBookingRequested(listing.PerformerID, customerName, dto.BookingPayload{
		BookingID: booking.ID,
		ListingID: listing.ID,
		Status:    string(booking.Status),
	}); err != nil {
		logger.Warn("failed to notify performer about booking request", "booking_id", booking.ID, "error", err)
	}

	return buildBookingResponse(booking), nil
}

func (s *bookingService) UpdateStatus(userID, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	newStatus := models.BookingStatus(req.Status)
	if err := s.authorizeTransition(userID, booking, newStatus); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, newStatus); err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}
	booking.Status = newStatus

	// The status change is pushed to the other side of the booking.
	counterpartyID := booking.CustomerID
	if userID == booking.CustomerID {
		counterpartyID = booking.PerformerID
	}
	if err := s.notifications.NotifyBookingStatus(counterpartyID, dto.BookingPayload{
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		Status:    string(newStatus),
	}); err != nil {
		logger.Warn("failed to notify about booking status change", "booking_id", booking.ID, "error", err)
	}

	return buildBookingResponse(booking), nil
}

// authorizeTransition checks both who may set the status and which
// transitions the current state allows.
func (s *bookingService) authorizeTransition(userID string, booking *models.Booking, newStatus models.BookingStatus) error {
	isCustomer := userID == booking.CustomerID
	isPerformer := userID == booking.PerformerID
	if !isCustomer && !isPerformer {
		return apperrors.ErrBookingAccessDenied
	}

	switch newStatus {
	case models.BookingStatusAccepted, models.BookingStatusDeclined:
		if !isPerformer {
			return apperrors.NewForbiddenError("Only the performer can accept or decline a booking")
		}
		if booking.Status != models.BookingStatusPending {
			return apperrors.ErrInvalidStatus("booking", fmt.Sprintf("cannot move booking from %s to %s", booking.Status, newStatus))
		}
	case models.BookingStatusCancelled:
		if !isCustomer {
			return apperrors.NewForbiddenError("Only the customer can cancel a booking")
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusAccepted {
			return apperrors.ErrInvalidStatus("booking", fmt.Sprintf("cannot cancel a %s booking", booking.Status))
		}
	case models.BookingStatusCompleted:
		if !isPerformer {
			return apperrors.NewForbiddenError("Only the performer can complete a booking")
		}
		if booking.Status != models.BookingStatusAccepted {
			return apperrors.ErrInvalidStatus("booking", fmt.Sprintf("cannot complete a %s booking", booking.Status))
		}
	default:
		return apperrors.ErrInvalidStatus("booking", fmt.Sprintf("unsupported booking status %s", newStatus))
	}
	return nil
}

func (s *bookingService) GetBooking(userID, bookingID string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(bookingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if booking.CustomerID != userID && booking.PerformerID != userID {
		return nil, apperrors.ErrBookingAccessDenied
	}
	return buildBookingResponse(booking), nil
}

func (s *bookingService) ListUserBookings(userID string) (*dto.BookingListResponse, error) {
	bookings, err := s.bookingRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	responses := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, buildBookingResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{
		Bookings: responses,
		Total:    len(responses),
	}, nil
}

func buildBookingResponse(booking *models.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:          booking.ID,
		CustomerID:  booking.CustomerID,
		PerformerID: booking.PerformerID,
		ListingID:   booking.ListingID,
		EventDate:   booking.EventDate,
		Message:     booking.Message,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
	}
}
