package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

// UserService implements account reads and profile updates.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Update applies account-level changes. A role change is only honoured when
// it names a known role; anything else is dropped rather than persisted.
func (s *UserService) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	if upd.Role != nil && !domain.ValidRole(*upd.Role) {
		upd.Role = nil
	}
	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

// UpdateProfile applies profile fields only; email and role never change here.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	upd.Email = nil
	upd.Role = nil
	return s.repo.Update(ctx, id, upd)
}
