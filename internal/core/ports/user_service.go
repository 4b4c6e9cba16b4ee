package ports

import (
	"context"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
}
