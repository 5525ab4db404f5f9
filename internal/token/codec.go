package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avelichko/taskdeck/internal/domain"
)

// Codec encodes and decodes RS256-signed tokens. Encoding injects the
// registered claims (jti, iss, iat, exp); decoding verifies the signature
// and the expiration. A Codec is immutable and safe for concurrent use.
type Codec struct {
	keys   *KeyPair
	issuer string
}

// Encoded is the result of signing a claim set.
type Encoded struct {
	Token     string
	ID        string // the jti, the revocation key
	ExpiresAt int64  // epoch seconds
}

// NewCodec creates a codec bound to a key pair and issuer
func NewCodec(keys *KeyPair, issuer string) *Codec {
	return &Codec{keys: keys, issuer: issuer}
}

// Encode signs the supplied claims into a compact token. Every call mints a
// fresh random jti. Timestamps are second-precision.
func (c *Codec) Encode(claims domain.Claims, ttl time.Duration) (*Encoded, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)
	id := uuid.New().String()

	payload := make(jwt.MapClaims, len(claims)+4)
	for name, value := range claims {
		payload[name] = value
	}
	// Registered claims always come from the codec, never from the caller.
	payload[domain.ClaimTokenID] = id
	payload[domain.ClaimIssuer] = c.issuer
	payload[domain.ClaimIssuedAt] = now.Unix()
	payload[domain.ClaimExpiresAt] = expiresAt.Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, payload)
	t.Header["typ"] = "Bearer"

	signed, err := t.SignedString(c.keys.Private)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Encoded{
		Token:     signed,
		ID:        id,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// Decode verifies the token's signature against the public key and its
// expiration, then returns the full claim set. A token is invalid exactly
// at its stated expiry second. Decode is pure and never mutates state.
func (c *Codec) Decode(tokenString string) (domain.Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	parsed, err := parser.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return c.keys.Public, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("failed to decode token: %w", ErrTokenExpired)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("failed to decode token: %w", ErrSignatureInvalid)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("failed to decode token: %w", ErrTokenMalformed)
		default:
			return nil, fmt.Errorf("failed to decode token: %w", ErrTokenMalformed)
		}
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type: %w", ErrTokenMalformed)
	}

	claims := make(domain.Claims, len(mapClaims))
	for name, value := range mapClaims {
		claims[name] = value
	}

	return claims, nil
}
