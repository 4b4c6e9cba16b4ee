package ports

import "github.com/sellr/marketplace-api/internal/core/domain"

// TokenCodec mints and verifies the signed access/refresh token pair.
//
// Issue returns the pair plus the refresh-token reference (its unique ID) that
// the SessionStore tracks as the current session. Verify rejects tokens whose
// signature, expiry, or type discriminator does not match.
type TokenCodec interface {
	Issue(user *domain.User) (*domain.TokenPair, string, error)
	Verify(raw string, expected domain.TokenType) (*domain.TokenClaims, error)
}
