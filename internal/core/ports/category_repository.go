package ports

import (
	"context"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

// CategoryUpdate carries the mutable category fields; nil pointers are left untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

// CategoryRepository defines the persistence boundary for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id string, upd CategoryUpdate) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
