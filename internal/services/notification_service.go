package services

import (
	"encoding/json"
	"fmt"

	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// RealtimeEmitter pushes an event to every live connection joined to the
// user's room. Delivery is best-effort; durability comes from the store.
type RealtimeEmitter interface {
	EmitToUser(userID string, event interface{})
}

type NotificationService interface {
	// Store operations
	CreateNotification(userID, notificationType, title, message string, data map[string]interface{}) (*dto.NotificationResponse, error)
	GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)

	// Notify persists first, then pushes to the user's room. A push failure
	// or an offline user never undoes the stored record.
	Notify(userID, notificationType, title, message string, data map[string]interface{}) error

	// Producer factories
	NotifyBookingRequested(performerID, customerName string, payload dto.BookingPayload) error
	NotifyBookingStatus(userID string, payload dto.BookingPayload) error
	NotifyModerationResult(performerID, listingTitle string, payload dto.ModerationPayload) error
	NotifyPartnerResult(userID string, payload dto.PartnerPayload) error

	// Admin operations
	Broadcast(req *dto.BroadcastNotificationRequest) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emitter          RealtimeEmitter
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emitter RealtimeEmitter,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emitter:          emitter,
	}
}

// ---------------- Store operations ----------------

func (s *notificationService) CreateNotification(userID, notificationType, title, message string, data map[string]interface{}) (*dto.NotificationResponse, error) {
	var dataJSON datatypes.JSON
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification data: %w", err)
		}
		dataJSON = datatypes.JSON(jsonData)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    dataJSON,
		IsRead:  false,
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildNotificationResponse(notification), nil
}

func (s *notificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

// MarkAsRead is idempotent: re-reading an already-read notification is a
// no-op success. An unknown id fails with a not-found error.
func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("Access to this notification is denied")
	}

	if err := s.notificationRepo.MarkAsRead(notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.PersistenceError(err)
	}
	return count, nil
}

// ---------------- Producer path ----------------

// Notify writes the durable record first and only then attempts the live
// push, so an offline user or a dropped connection still finds the
// notification on the next fetch.
func (s *notificationService) Notify(userID, notificationType, title, message string, data map[string]interface{}) error {
	response, err := s.CreateNotification(userID, notificationType, title, message, data)
	if err != nil {
		return err
	}

	if s.emitter != nil {
		s.emitter.EmitToUser(userID, &dto.NotificationEvent{
			Event:   "notification",
			Payload: response,
		})
	}
	return nil
}

// ---------------- Producer factories ----------------

func (s *notificationService) NotifyBookingRequested(performerID, customerName string, payload dto.BookingPayload) error {
	return s.Notify(
		performerID,
		repositories.NotificationTypeBookingRequest,
		"New booking request",
		fmt.Sprintf("%s wants to book your services", customerName),
		payloadToMap(payload),
	)
}

func (s *notificationService) NotifyBookingStatus(userID string, payload dto.BookingPayload) error {
	var title, message string
	switch models.BookingStatus(payload.Status) {
	case models.BookingStatusAccepted:
		title = "Booking accepted"
		message = "The performer accepted your booking"
	case models.BookingStatusDeclined:
		title = "Booking declined"
		message = "The performer declined your booking"
	case models.BookingStatusCancelled:
		title = "Booking cancelled"
		message = "The customer cancelled the booking"
	case models.BookingStatusCompleted:
		title = "Booking completed"
		message = "Your booking has been marked as completed"
	default:
		title = "Booking updated"
		message = fmt.Sprintf("Booking status changed to %s", payload.Status)
	}

	return s.Notify(userID, repositories.NotificationTypeBookingStatus, title, message, payloadToMap(payload))
}

func (s *notificationService) NotifyModerationResult(performerID, listingTitle string, payload dto.ModerationPayload) error {
	var title, message string
	if models.ModerationStatus(payload.Status) == models.ModerationStatusApproved {
		title = "Listing approved"
		message = fmt.Sprintf("Your listing '%s' is now live", listingTitle)
	} else {
		title = "Listing rejected"
		message = fmt.Sprintf("Your listing '%s' was rejected", listingTitle)
		if payload.Comment != "" {
			message = fmt.Sprintf("%s: %s", message, payload.Comment)
		}
	}

	return s.Notify(performerID, repositories.NotificationTypeModerationResult, title, message, payloadToMap(payload))
}

func (s *notificationService) NotifyPartnerResult(userID string, payload dto.PartnerPayload) error {
	var title, message string
	if models.PartnerStatus(payload.Status) == models.PartnerStatusApproved {
		title = "Partner application approved"
		message = fmt.Sprintf("Welcome aboard! Your referral code is %s", payload.ReferralCode)
	} else {
		title = "Partner application rejected"
		message = "Your partner application was not approved this time"
	}

	return s.Notify(userID, repositories.NotificationTypePartnerResult, title, message, payloadToMap(payload))
}

// ---------------- Admin operations ----------------

func (s *notificationService) Broadcast(req *dto.BroadcastNotificationRequest) error {
	for _, userID := range req.UserIDs {
		if _, err := s.userRepo.FindByID(userID); err != nil {
			return apperrors.ErrNotFound(fmt.Errorf("user not found: %s", userID))
		}
	}

	for _, userID := range req.UserIDs {
		if err := s.Notify(userID, repositories.NotificationTypeSystem, req.Title, req.Message, req.Data); err != nil {
			// Keep delivering to the rest; a broadcast is best-effort per user.
			logger.Warn("broadcast notification failed", "user_id", userID, "error", err)
		}
	}
	return nil
}

// ---------------- Helpers ----------------

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}

	if len(notification.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			response.Data = data
		}
	}

	return response
}

// payloadToMap flattens a typed payload into the generic data map persisted
// to jsonb.
func payloadToMap(payload interface{}) map[string]interface{} {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
