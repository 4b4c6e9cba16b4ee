package ports

import (
	"context"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

// UserUpdate carries the mutable user fields; nil pointers are left untouched.
type UserUpdate struct {
	Email      *string
	FirstName  *string
	LastName   *string
	ProfilePic *string
	Role       *string
}

// UserRepository defines the persistence boundary for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
}
