package repositories

import (
	"errors"

	"eventomir_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindByUser(userID string) ([]models.Booking, error)
	UpdateStatus(bookingID string, status models.BookingStatus) error
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FindByUser returns bookings where the user is either side of the deal.
func (r *BookingRepositoryImpl) FindByUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("customer_id = ? OR performer_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) UpdateStatus(bookingID string, status models.BookingStatus) error {
	result := r.db.Model(&models.Booking{}).Where("id = ?", bookingID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
