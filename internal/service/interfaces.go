package service

import (
	"context"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
)

// TokenService owns the token lifecycle: minting, verification, claim
// extraction and revocation checks. A token moves Minted -> Active ->
// (Expired | Revoked); both end states are terminal for its jti.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, claims domain.Claims) (*domain.TokenPair, error)
	RefreshTokenPair(ctx context.Context, claims domain.Claims, refreshToken string) (*domain.TokenPair, error)
	VerifyAndValidate(tokens ...string) error
	GetClaims(tokenString string) (domain.Claims, error)
	GetID(tokenString string) (string, error)
	Principal(tokenString string) (*domain.Principal, error)
	CheckInvalidated(ctx context.Context, tokenID string) error
	Invalidate(ctx context.Context, tokenIDs ...string) error
}

// AuthService defines the authentication use cases
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// TaskService defines the task use cases, all scoped to a principal
type TaskService interface {
	Create(ctx context.Context, principal *domain.Principal, req *dto.CreateTaskRequest) (*domain.Task, error)
	Get(ctx context.Context, principal *domain.Principal, taskID string) (*domain.Task, error)
	List(ctx context.Context, principal *domain.Principal, limit, offset int) ([]*domain.Task, int, error)
	Update(ctx context.Context, principal *domain.Principal, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, principal *domain.Principal, taskID string) error
}
