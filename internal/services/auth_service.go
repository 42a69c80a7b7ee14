package services

import (
	"eventomir_backend/internal/auth"
	"eventomir_backend/internal/email"
	"eventomir_backend/internal/logger"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services/dto"
	"eventomir_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Verify(token string) error
	Me(userID string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo     repositories.UserRepository
	partnerRepo  repositories.PartnerRepository
	emailService email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	partnerRepo repositories.PartnerRepository,
	emailService email.Provider,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		partnerRepo:  partnerRepo,
		emailService: emailService,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRole(req.Role)
	if role != models.UserRoleCustomer && role != models.UserRolePerformer {
		// Admin accounts are seeded, never self-registered.
		return nil, apperrors.NewBadRequestError("Role must be customer or performer")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		Status:       models.UserStatusActive,
		VerifyToken:  uuid.NewString(),
	}

	// Referral tracking: an unknown code is ignored rather than rejected, so
	// a stale partner link never blocks a registration.
	if req.ReferralCode != "" {
		if _, err := s.partnerRepo.FindByReferralCode(req.ReferralCode); err == nil {
			user.ReferredBy = req.ReferralCode
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	if user.ReferredBy != "" {
		if err := s.partnerRepo.IncrementReferralCount(user.ReferredBy); err != nil {
			logger.Warn("failed to increment referral count", "code", user.ReferredBy, "error", err)
		}
	}

	if err := s.emailService.SendVerification(user.Email, user.VerifyToken); err != nil {
		// Verification can be re-sent; registration stands.
		logger.Warn("failed to send verification email", "email", user.Email, "error", err)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        buildUserResponse(user),
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        buildUserResponse(user),
	}, nil
}

func (s *authService) Verify(token string) error {
	user, err := s.userRepo.FindByVerifyToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	user.IsVerified = true
	user.VerifyToken = ""
	if err := s.userRepo.Save(user); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildUserResponse(user), nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
	}
}
