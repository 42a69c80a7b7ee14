package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"eventomir_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Notification type tags
const (
	NotificationTypeBookingRequest   = "booking_request"
	NotificationTypeBookingStatus    = "booking_status"
	NotificationTypeModerationResult = "moderation_result"
	NotificationTypePartnerResult    = "partner_result"
	NotificationTypeSystem           = "system"
)

// NotificationCriteria filters a user's notification listing.
type NotificationCriteria struct {
	UnreadOnly bool
	Type       string
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	CreateBulkNotifications(notifications []*models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulkNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	for _, notification := range notifications {
		if err := r.validateNotification(notification); err != nil {
			return err
		}
	}
	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// FindUserNotifications returns the user's notifications ordered most recent
// first, along with the total count for the criteria.
func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Limit(criteria.PageSize).Offset((criteria.Page - 1) * criteria.PageSize)
	}

	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, total, err
}

// MarkAsRead sets is_read. Marking an already-read notification again is a
// no-op success that keeps the original read_at; an unknown id is
// ErrNotificationNotFound.
func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", notificationID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Already read, or missing entirely.
		var count int64
		if err := r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotificationNotFound
		}
	}
	return nil
}

// MarkAllAsRead succeeds even when the user has no unread notifications.
func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	result := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": time.Now(),
	})
	return result.Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}
	if notification.Type == "" {
		return errors.New("notification type is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	validTypes := map[string]bool{
		NotificationTypeBookingRequest:   true,
		NotificationTypeBookingStatus:    true,
		NotificationTypeModerationResult: true,
		NotificationTypePartnerResult:    true,
		NotificationTypeSystem:           true,
	}
	if !validTypes[notification.Type] {
		return ErrInvalidNotificationData
	}

	if len(notification.Data) > 0 && !json.Valid(notification.Data) {
		return ErrInvalidNotificationData
	}
	return nil
}
