package ports

import (
	"context"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

// SignupInput carries the fields required to register an account.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService orchestrates the session lifecycle: credential verification,
// token issuance, rotation, and revocation.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
