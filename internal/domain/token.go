package domain

import (
	"time"
)

// Claim names form a fixed, enumerated set. Claims are never addressed by
// free-form strings outside these constants, so a typo cannot silently
// produce an empty claim.
const (
	ClaimUserID     = "userId"
	ClaimUserType   = "userType"
	ClaimUserStatus = "userStatus"
	ClaimFirstName  = "firstName"
	ClaimLastName   = "lastName"
	ClaimEmail      = "email"
	ClaimPhone      = "phone"

	// Registered claim names injected by the codec on every token.
	ClaimTokenID   = "jti"
	ClaimIssuer    = "iss"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// Claims is the payload of identity attributes embedded in a signed token.
type Claims map[string]any

// UserClaims assembles the full claim set carried by an access token.
func UserClaims(u *User) Claims {
	return Claims{
		ClaimUserID:     u.ID,
		ClaimUserType:   string(u.Type),
		ClaimUserStatus: string(u.Status),
		ClaimFirstName:  u.FirstName,
		ClaimLastName:   u.LastName,
		ClaimEmail:      u.Email,
		ClaimPhone:      u.Phone,
	}
}

// RefreshClaims assembles the minimal claim set carried by a refresh token.
// A refresh token identifies the subject and nothing else.
func RefreshClaims(userID string) Claims {
	return Claims{
		ClaimUserID: userID,
	}
}

func (c Claims) stringClaim(name string) string {
	v, _ := c[name].(string)
	return v
}

// UserID returns the subject user id, or "" if absent.
func (c Claims) UserID() string {
	return c.stringClaim(ClaimUserID)
}

// UserType returns the user-type claim, or "" if absent.
func (c Claims) UserType() string {
	return c.stringClaim(ClaimUserType)
}

// TokenID returns the jti, or "" if absent.
func (c Claims) TokenID() string {
	return c.stringClaim(ClaimTokenID)
}

// Issuer returns the iss claim, or "" if absent.
func (c Claims) Issuer() string {
	return c.stringClaim(ClaimIssuer)
}

// ExpiresAt returns the exp claim in epoch seconds, or 0 if absent.
// Decoded JSON numbers arrive as float64.
func (c Claims) ExpiresAt() int64 {
	return c.numericClaim(ClaimExpiresAt)
}

// IssuedAt returns the iat claim in epoch seconds, or 0 if absent.
func (c Claims) IssuedAt() int64 {
	return c.numericClaim(ClaimIssuedAt)
}

func (c Claims) numericClaim(name string) int64 {
	switch v := c[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// TokenPair represents an access/refresh token pair returned to a client
type TokenPair struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresAt int64  `json:"access_token_expires_at"`
	RefreshToken         string `json:"refresh_token"`
}

// InvalidToken is a revocation record. Records are append-only; a token id
// listed here is revoked until its natural expiry and never reinstated.
type InvalidToken struct {
	ID        string    `json:"id" db:"id"`
	TokenID   string    `json:"token_id" db:"token_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
