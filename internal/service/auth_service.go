package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/repository"
	"github.com/avelichko/taskdeck/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo     repository.UserRepository
	tokenService TokenService
	bcryptCost   int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokenService TokenService,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
	}
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number: %w", ErrValidation)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s is taken: %w", email, ErrUserAlreadyExists)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Phone:        req.Phone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		Type:         domain.UserTypeStandard,
		Status:       domain.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("email %s is taken: %w", email, ErrUserAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return userResponse(user), nil
}

// Login authenticates a user by email and password and mints a token pair
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrCredentialInvalid
	}

	return s.tokenService.GenerateTokenPair(ctx, domain.UserClaims(user))
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
// The refresh token itself is validated first so expired or forged tokens
// fail before any store lookup.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if err := s.tokenService.VerifyAndValidate(refreshToken); err != nil {
		return nil, err
	}

	claims, err := s.tokenService.GetClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	userID := claims.UserID()
	if userID == "" {
		return nil, fmt.Errorf("refresh token has no subject: %w", ErrClaimMissing)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive() {
		return nil, fmt.Errorf("user %s is %s: %w", user.ID, user.Status, ErrUserStatusInvalid)
	}

	return s.tokenService.RefreshTokenPair(ctx, domain.UserClaims(user), refreshToken)
}

// Logout revokes an access/refresh token pair. Both tokens are validated
// and checked against the revocation list before anything is written, so a
// repeated logout with the same pair fails without inserting again - logout
// is deliberately not idempotent.
func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.tokenService.VerifyAndValidate(accessToken, refreshToken); err != nil {
		return err
	}

	accessID, err := s.tokenService.GetID(accessToken)
	if err != nil {
		return err
	}

	refreshID, err := s.tokenService.GetID(refreshToken)
	if err != nil {
		return err
	}

	for _, id := range []string{accessID, refreshID} {
		if err := s.tokenService.CheckInvalidated(ctx, id); err != nil {
			return err
		}
	}

	return s.tokenService.Invalidate(ctx, accessID, refreshID)
}

func userResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Type:      string(user.Type),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
