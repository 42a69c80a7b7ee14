package services

import (
	"strings"

	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type PartnerService interface {
	Apply(userID string, req *dto.PartnerApplyRequest) (*dto.PartnerApplicationResponse, error)
	GetOwn(userID string) (*dto.PartnerApplicationResponse, error)
	ListByStatus(status models.PartnerStatus) ([]*dto.PartnerApplicationResponse, error)

	// Decide approves or rejects a pending application. Approval mints the
	// referral code and the applicant is notified either way.
	Decide(applicationID string, req *dto.DecidePartnerRequest) (*dto.PartnerApplicationResponse, error)
}

type partnerService struct {
	partnerRepo   repositories.PartnerRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewPartnerService(
	partnerRepo repositories.PartnerRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) PartnerService {
	return &partnerService{
		partnerRepo:   partnerRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *partnerService) Apply(userID string, req *dto.PartnerApplyRequest) (*dto.PartnerApplicationResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if existing, err := s.partnerRepo.FindByUser(userID); err == nil {
		switch existing.Status {
		case models.PartnerStatusPending:
			return nil, apperrors.ErrPartnerApplicationPending
		case models.PartnerStatusApproved:
			return nil, apperrors.ErrPartnerApplicationDecided
		}
		// A rejected applicant may apply again.
	}

	application := &models.PartnerApplication{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Message:     req.Message,
		Status:      models.PartnerStatusPending,
	}

	if err := s.partnerRepo.Create(application); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return buildPartnerResponse(application), nil
}

func (s *partnerService) GetOwn(userID string) (*dto.PartnerApplicationResponse, error) {
	application, err := s.partnerRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildPartnerResponse(application), nil
}

func (s *partnerService) ListByStatus(status models.PartnerStatus) ([]*dto.PartnerApplicationResponse, error) {
	applications, err := s.partnerRepo.FindByStatus(status)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	responses := make([]*dto.PartnerApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, buildPartnerResponse(&applications[i]))
	}
	return responses, nil
}

func (s *partnerService) Decide(applicationID string, req *dto.DecidePartnerRequest) (*dto.PartnerApplicationResponse, error) {
	application, err := s.partnerRepo.FindByID(applicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if application.Status != models.PartnerStatusPending {
		return nil, apperrors.ErrPartnerApplicationDecided
	}

	if req.Approve {
		application.Status = models.PartnerStatusApproved
		application.ReferralCode = generateReferralCode()
	} else {
		application.Status = models.PartnerStatusRejected
	}
	application.Comment = req.Comment

	if err := s.partnerRepo.Save(application); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	if err := s.notifications.NotifyPartnerResult(application.UserID, dto.PartnerPayload{
		ApplicationID: application.ID,
		Status:        string(application.Status),
		ReferralCode:  application.ReferralCode,
	}); err != nil {
		logger.Warn("failed to notify applicant about partner decision", "application_id", application.ID, "error", err)
	}

	return buildPartnerResponse(application), nil
}

// generateReferralCode produces a short shareable code. Collisions are
// guarded by the unique index on referral_code.
func generateReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func buildPartnerResponse(application *models.PartnerApplication) *dto.PartnerApplicationResponse {
	return &dto.PartnerApplicationResponse{
		ID:            application.ID,
		UserID:        application.UserID,
		CompanyName:   application.CompanyName,
		Website:       application.Website,
		Message:       application.Message,
		Status:        string(application.Status),
		Comment:       application.Comment,
		ReferralCode:  application.ReferralCode,
		ReferralCount: application.ReferralCount,
		CreatedAt:     application.CreatedAt,
	}
}
