package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/repository"
	"github.com/avelichko/taskdeck/internal/token"
)

// fakeInvalidTokenRepo is a map-backed revocation store
type fakeInvalidTokenRepo struct {
	mu       sync.Mutex
	revoked  map[string]bool
	inserts  int
	failWith error
}

func newFakeInvalidTokenRepo() *fakeInvalidTokenRepo {
	return &fakeInvalidTokenRepo{revoked: make(map[string]bool)}
}

func (f *fakeInvalidTokenRepo) InsertAll(ctx context.Context, tokenIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inserts++
	for _, id := range tokenIDs {
		f.revoked[id] = true
	}
	return nil
}

func (f *fakeInvalidTokenRepo) Exists(ctx context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.revoked[tokenID], nil
}

func (f *fakeInvalidTokenRepo) GetByID(ctx context.Context, id string) (*domain.InvalidToken, error) {
	return nil, repository.ErrNotFound
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return token.NewCodec(&token.KeyPair{Private: key, Public: &key.PublicKey}, "taskdeck")
}

func newTestTokenService(t *testing.T, repo repository.InvalidTokenRepository) TokenService {
	t.Helper()
	return NewTokenService(newTestCodec(t), repo, 15*time.Minute, 7*24*time.Hour)
}

func testUser() *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Email:     "u@example.com",
		Phone:     "+15551234567",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Type:      domain.UserTypeStandard,
		Status:    domain.UserStatusActive,
	}
}

func TestTokenService_GenerateTokenPair(t *testing.T) {
	svc := newTestTokenService(t, newFakeInvalidTokenRepo())
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(testUser()))
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// Expiry lands at roughly now + access TTL, in epoch seconds.
	want := time.Now().Add(15 * time.Minute).Unix()
	assert.InDelta(t, want, pair.AccessTokenExpiresAt, 5)

	accessClaims, err := svc.GetClaims(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := svc.GetClaims(pair.RefreshToken)
	require.NoError(t, err)

	// Access and refresh tokens are independently revocable.
	assert.NotEqual(t, accessClaims.TokenID(), refreshClaims.TokenID())
	assert.Equal(t, accessClaims.UserID(), refreshClaims.UserID())

	// The refresh token carries only the subject, not the profile.
	assert.Empty(t, refreshClaims.UserType())
	assert.Empty(t, refreshClaims[domain.ClaimEmail])
	assert.Equal(t, "u@example.com", accessClaims[domain.ClaimEmail])
}

func TestTokenService_RefreshTokenPair(t *testing.T) {
	repo := newFakeInvalidTokenRepo()
	svc := newTestTokenService(t, repo)
	ctx := context.Background()

	user := testUser()
	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(user))
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(ctx, domain.UserClaims(user), pair.RefreshToken)
	require.NoError(t, err)

	// The refresh token string is reused unchanged; the access token is new.
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, refreshed.AccessToken)

	oldID, err := svc.GetID(pair.AccessToken)
	require.NoError(t, err)
	newID, err := svc.GetID(refreshed.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, newID)
}

func TestTokenService_RefreshTokenPair_Revoked(t *testing.T) {
	repo := newFakeInvalidTokenRepo()
	svc := newTestTokenService(t, repo)
	ctx := context.Background()

	user := testUser()
	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(user))
	require.NoError(t, err)

	refreshID, err := svc.GetID(pair.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, refreshID))

	_, err = svc.RefreshTokenPair(ctx, domain.UserClaims(user), pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenAlreadyInvalidated)
}

func TestTokenService_RefreshTokenPair_StoreFailure(t *testing.T) {
	repo := newFakeInvalidTokenRepo()
	repo.failWith = fmt.Errorf("connection refused: %w", repository.ErrUnavailable)
	svc := newTestTokenService(t, repo)
	ctx := context.Background()

	user := testUser()

	// Minting a brand-new pair never touches the store.
	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(user))
	require.NoError(t, err)

	// An unreachable revocation store blocks the refresh; it never fails open.
	_, err = svc.RefreshTokenPair(ctx, domain.UserClaims(user), pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestTokenService_VerifyAndValidate(t *testing.T) {
	svc := newTestTokenService(t, newFakeInvalidTokenRepo())
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(testUser()))
	require.NoError(t, err)

	require.NoError(t, svc.VerifyAndValidate(pair.AccessToken))
	require.NoError(t, svc.VerifyAndValidate(pair.AccessToken, pair.RefreshToken))

	err = svc.VerifyAndValidate(pair.AccessToken, "garbage")
	require.Error(t, err)
	assert.ErrorIs(t, err, token.ErrTokenMalformed)
}

func TestTokenService_VerifyAndValidate_ForeignKey(t *testing.T) {
	svc := newTestTokenService(t, newFakeInvalidTokenRepo())
	other := newTestTokenService(t, newFakeInvalidTokenRepo())
	ctx := context.Background()

	pair, err := other.GenerateTokenPair(ctx, domain.UserClaims(testUser()))
	require.NoError(t, err)

	err = svc.VerifyAndValidate(pair.AccessToken)
	assert.ErrorIs(t, err, token.ErrSignatureInvalid)
}

func TestTokenService_Principal(t *testing.T) {
	svc := newTestTokenService(t, newFakeInvalidTokenRepo())
	ctx := context.Background()

	user := testUser()
	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(user))
	require.NoError(t, err)

	principal, err := svc.Principal(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, domain.UserTypeStandard, principal.Role)
}

func TestTokenService_Principal_MissingUserType(t *testing.T) {
	svc := newTestTokenService(t, newFakeInvalidTokenRepo())
	ctx := context.Background()

	// Refresh tokens carry no user type; deriving a principal from one must
	// fail instead of defaulting to a role.
	pair, err := svc.GenerateTokenPair(ctx, domain.UserClaims(testUser()))
	require.NoError(t, err)

	_, err = svc.Principal(pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClaimMissing)
}

func TestTokenService_CheckInvalidated(t *testing.T) {
	repo := newFakeInvalidTokenRepo()
	svc := newTestTokenService(t, repo)
	ctx := context.Background()

	id := uuid.New().String()
	require.NoError(t, svc.CheckInvalidated(ctx, id))

	// Repeated checks without an intervening insert agree.
	require.NoError(t, svc.CheckInvalidated(ctx, id))

	require.NoError(t, svc.Invalidate(ctx, id))

	err := svc.CheckInvalidated(ctx, id)
	assert.ErrorIs(t, err, ErrTokenAlreadyInvalidated)
}
