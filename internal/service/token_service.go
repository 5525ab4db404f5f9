package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/repository"
	"github.com/avelichko/taskdeck/internal/token"
)

// tokenService implements TokenService. It holds no mutable state beyond
// the codec's read-only key material; the revocation list is the only shared
// resource and lives behind the repository.
type tokenService struct {
	codec         *token.Codec
	invalidTokens repository.InvalidTokenRepository
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(
	codec *token.Codec,
	invalidTokens repository.InvalidTokenRepository,
	accessTTL, refreshTTL time.Duration,
) TokenService {
	return &tokenService{
		codec:         codec,
		invalidTokens: invalidTokens,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateTokenPair mints a fresh access token carrying the full claim set
// and a fresh refresh token carrying only the subject. The two tokens get
// independent jtis and are independently revocable. No revocation check
// happens here: a brand-new login has nothing to revoke.
func (s *tokenService) GenerateTokenPair(ctx context.Context, claims domain.Claims) (*domain.TokenPair, error) {
	access, err := s.codec.Encode(claims, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.codec.Encode(domain.RefreshClaims(claims.UserID()), s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:          access.Token,
		AccessTokenExpiresAt: access.ExpiresAt,
		RefreshToken:         refresh.Token,
	}, nil
}

// RefreshTokenPair mints a new access token against an existing refresh
// token. The refresh token's jti is checked against the revocation list
// first; a revoked refresh token can never mint a new access token. On
// success the same refresh token string is returned unchanged - refresh
// tokens are reused until they expire or are revoked at logout.
func (s *tokenService) RefreshTokenPair(ctx context.Context, claims domain.Claims, refreshToken string) (*domain.TokenPair, error) {
	refreshID, err := s.GetID(refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.CheckInvalidated(ctx, refreshID); err != nil {
		return nil, err
	}

	access, err := s.codec.Encode(claims, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:          access.Token,
		AccessTokenExpiresAt: access.ExpiresAt,
		RefreshToken:         refreshToken,
	}, nil
}

// VerifyAndValidate checks signature and expiry of every given token and
// fails on the first invalid one. The decoded claims are discarded.
func (s *tokenService) VerifyAndValidate(tokens ...string) error {
	for _, t := range tokens {
		if _, err := s.codec.Decode(t); err != nil {
			return err
		}
	}
	return nil
}

// GetClaims decodes the token and returns its payload. Verification is
// inherent to decoding; there is no unverified read.
func (s *tokenService) GetClaims(tokenString string) (domain.Claims, error) {
	return s.codec.Decode(tokenString)
}

// GetID returns the token's jti
func (s *tokenService) GetID(tokenString string) (string, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return "", err
	}

	id := claims.TokenID()
	if id == "" {
		return "", fmt.Errorf("token carries no id: %w", ErrClaimMissing)
	}

	return id, nil
}

// Principal derives an authorization-ready identity from the token. The
// user-type claim is mandatory: its absence fails the derivation instead of
// granting a default authority.
func (s *tokenService) Principal(tokenString string) (*domain.Principal, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	userType := claims.UserType()
	if userType == "" {
		return nil, fmt.Errorf("user type claim absent: %w", ErrClaimMissing)
	}

	return &domain.Principal{
		UserID: claims.UserID(),
		Role:   domain.UserType(userType),
	}, nil
}

// CheckInvalidated fails if the token id is on the revocation list. A store
// failure propagates as a hard error: an unverifiable revocation check never
// passes a token through.
func (s *tokenService) CheckInvalidated(ctx context.Context, tokenID string) error {
	revoked, err := s.invalidTokens.Exists(ctx, tokenID)
	if err != nil {
		return err
	}
	if revoked {
		return fmt.Errorf("token %s: %w", tokenID, ErrTokenAlreadyInvalidated)
	}
	return nil
}

// Invalidate persists revocation records for the given token ids in one batch
func (s *tokenService) Invalidate(ctx context.Context, tokenIDs ...string) error {
	return s.invalidTokens.InsertAll(ctx, tokenIDs)
}
