package repositories

import (
	"errors"

	"eventomir_backend/internal/models"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingCriteria filters the public catalogue.
type ListingCriteria struct {
	Category string
	City     string
	Status   models.ModerationStatus
	Page     int
	PageSize int
}

type ListingRepository interface {
	Create(listing *models.Listing) error
	FindByID(id string) (*models.Listing, error)
	FindListings(criteria ListingCriteria) ([]models.Listing, int64, error)
	FindByPerformer(performerID string) ([]models.Listing, error)
	Save(listing *models.Listing) error
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) FindListings(criteria ListingCriteria) ([]models.Listing, int64, error) {
	var listings []models.Listing
	query := r.db.Model(&models.Listing{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Limit(criteria.PageSize).Offset((criteria.Page - 1) * criteria.PageSize)
	}

	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, total, err
}

func (r *ListingRepositoryImpl) FindByPerformer(performerID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("performer_id = ?", performerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) Save(listing *models.Listing) error {
	return r.db.Save(listing).Error
}
