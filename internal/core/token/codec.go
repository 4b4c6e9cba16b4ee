// Package token implements the signed access/refresh token codec on top of
// golang-jwt. Tokens are HS256 JWTs carrying the user identity plus a "typ"
// claim so an access token can never stand in for a refresh token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

const (
	issuer = "sellr-api"

	// leeway absorbs clock skew between token issuer and verifier.
	leeway = 60 * time.Second

	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT claim set for both token types.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

// Codec signs and verifies token pairs with a shared HMAC secret.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec. Non-positive TTLs fall back to defaults.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue mints an access/refresh pair for user. The returned reference is the
// refresh token's unique ID (JTI); the session store tracks it as the single
// currently-valid refresh token for the user.
func (c *Codec) Issue(user *domain.User) (*domain.TokenPair, string, error) {
	now := time.Now().UTC()

	access, err := c.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
		Email:     user.Email,
		Role:      user.Role,
		TokenType: string(domain.TokenTypeAccess),
	})
	if err != nil {
		return nil, "", err
	}

	refreshID := uuid.NewString()
	refresh, err := c.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshID,
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
		Email:     user.Email,
		Role:      user.Role,
		TokenType: string(domain.TokenTypeRefresh),
	})
	if err != nil {
		return nil, "", err
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, refreshID, nil
}

func (c *Codec) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature, expiry (with leeway), and the type discriminator.
// Claim content is never trusted before the signature check passes.
func (c *Codec) Verify(raw string, expected domain.TokenType) (*domain.TokenClaims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithLeeway(leeway), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.TokenType != string(expected) {
		return nil, domain.ErrTokenTypeMismatch
	}

	return &domain.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// AccessTTL returns the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }
