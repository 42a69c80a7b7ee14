package repositories

import (
	"errors"

	"eventomir_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPartnerApplicationNotFound = errors.New("partner application not found")

type PartnerRepository interface {
	Create(application *models.PartnerApplication) error
	FindByID(id string) (*models.PartnerApplication, error)
	FindByUser(userID string) (*models.PartnerApplication, error)
	FindByReferralCode(code string) (*models.PartnerApplication, error)
	FindByStatus(status models.PartnerStatus) ([]models.PartnerApplication, error)
	Save(application *models.PartnerApplication) error
	IncrementReferralCount(code string) error
}

type PartnerRepositoryImpl struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &PartnerRepositoryImpl{db: db}
}

func (r *PartnerRepositoryImpl) Create(application *models.PartnerApplication) error {
	return r.db.Create(application).Error
}

func (r *PartnerRepositoryImpl) FindByID(id string) (*models.PartnerApplication, error) {
	var application models.PartnerApplication
	err := r.db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// FindByUser returns the user's most recent application.
func (r *PartnerRepositoryImpl) FindByUser(userID string) (*models.PartnerApplication, error) {
	var application models.PartnerApplication
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *PartnerRepositoryImpl) FindByReferralCode(code string) (*models.PartnerApplication, error) {
	var application models.PartnerApplication
	err := r.db.First(&application, "referral_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *PartnerRepositoryImpl) FindByStatus(status models.PartnerStatus) ([]models.PartnerApplication, error) {
	var applications []models.PartnerApplication
	query := r.db.Model(&models.PartnerApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *PartnerRepositoryImpl) Save(application *models.PartnerApplication) error {
	return r.db.Save(application).Error
}

func (r *PartnerRepositoryImpl) IncrementReferralCount(code string) error {
	return r.db.Model(&models.PartnerApplication{}).
		Where("referral_code = ?", code).
		UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error
}
