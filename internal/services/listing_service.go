package services

import (
	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"
)

type ListingService interface {
	CreateListing(performerID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	UpdateListing(performerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error)
	GetListing(requesterID, listingID string) (*dto.ListingResponse, error)
	ListPublic(criteria repositories.ListingCriteria) (*dto.ListingListResponse, error)
	ListMine(performerID string) (*dto.ListingListResponse, error)
	ListPending(criteria repositories.ListingCriteria) (*dto.ListingListResponse, error)

	// Moderate decides a pending listing and notifies the performer.
	// The admin role is enforced at the route level.
	Moderate(listingID string, req *dto.ModerateListingRequest) (*dto.ListingResponse, error)
}

type listingService struct {
	listingRepo   repositories.ListingRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) ListingService {
	return &listingService{
		listingRepo:   listingRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *listingService) CreateListing(performerID string, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	performer, err := s.userRepo.FindByID(performerID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if performer.Role != models.UserRolePerformer {
		return nil, apperrors.NewForbiddenError("Only performers can create listings")
	}

	listing := &models.Listing{
		PerformerID: performerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    models.ListingCategory(req.Category),
		City:        req.City,
		Price:       req.Price,
		Status:      models.ModerationStatusPending,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildListingResponse(listing), nil
}

// UpdateListing applies the owner's edits and sends the listing back to the
// moderation queue.
func (s *listingService) UpdateListing(performerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if listing.PerformerID != performerID {
		return nil, apperrors.NewForbiddenError("You can only edit your own listings")
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}

	listing.Status = models.ModerationStatusPending
	listing.ModerationComment = ""

	if err := s.listingRepo.Save(listing); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildListingResponse(listing), nil
}

func (s *listingService) GetListing(requesterID, listingID string) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Unapproved listings are visible to their owner only; admins review
	// through the moderation endpoints.
	if listing.Status != models.ModerationStatusApproved && listing.PerformerID != requesterID {
		return nil, apperrors.ErrListingNotApproved
	}

	return buildListingResponse(listing), nil
}

func (s *listingService) ListPublic(criteria repositories.ListingCriteria) (*dto.ListingListResponse, error) {
	criteria.Status = models.ModerationStatusApproved

	listings, total, err := s.listingRepo.FindListings(criteria)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildListingListResponse(listings, total, criteria.Page, criteria.PageSize), nil
}

// ListPending serves the admin review queue; the status filter defaults to
// pending but any moderation status can be requested.
func (s *listingService) ListPending(criteria repositories.ListingCriteria) (*dto.ListingListResponse, error) {
	if criteria.Status == "" {
		criteria.Status = models.ModerationStatusPending
	}

	listings, total, err := s.listingRepo.FindListings(criteria)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildListingListResponse(listings, total, criteria.Page, criteria.PageSize), nil
}

func (s *listingService) ListMine(performerID string) (*dto.ListingListResponse, error) {
	listings, err := s.listingRepo.FindByPerformer(performerID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return buildListingListResponse(listings, int64(len(listings)), 0, 0), nil
}

func (s *listingService) Moderate(listingID string, req *dto.ModerateListingRequest) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(listingID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if listing.Status != models.ModerationStatusPending {
		return nil, apperrors.ErrListingAlreadyModerated
	}

	if req.Approve {
		listing.Status = models.ModerationStatusApproved
	} else {
		listing.Status = models.ModerationStatusRejected
	}
	listing.ModerationComment = req.Comment

	if err := s.listingRepo.Save(listing); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	// The moderation decision stands regardless of notification delivery.
	if err := s.notifications.NotifyModerationResult(listing.PerformerID, listing.Title, dto.ModerationPayload{
		ListingID: listing.ID,
		Status:    string(listing.Status),
		Comment:   req.Comment,
	}); err != nil {
		logger.Warn("failed to notify performer about moderation result", "listing_id", listing.ID, "error", err)
	}

	return buildListingResponse(listing), nil
}

func buildListingResponse(listing *models.Listing) *dto.ListingResponse {
	return &dto.ListingResponse{
		ID:                listing.ID,
		PerformerID:       listing.PerformerID,
		Title:             listing.Title,
		Description:       listing.Description,
		Category:          string(listing.Category),
		City:              listing.City,
		Price:             listing.Price,
		Status:            string(listing.Status),
		ModerationComment: listing.ModerationComment,
		CreatedAt:         listing.CreatedAt,
	}
}

func buildListingListResponse(listings []models.Listing, total int64, page, pageSize int) *dto.ListingListResponse {
	responses := make([]*dto.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, buildListingResponse(&listings[i]))
	}
	return &dto.ListingListResponse{
		Listings: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
