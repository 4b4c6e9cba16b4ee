package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

// dummyHash keeps the bcrypt cost paid even when the email is unknown, so a
// login attempt against a missing account takes as long as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService composes credential verification, the token codec, and the
// session store into the login / refresh / logout flows.
type AuthService struct {
	users      ports.UserRepository
	codec      ports.TokenCodec
	sessions   ports.SessionStore
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codec ports.TokenCodec,
	sessions ports.SessionStore,
	refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, codec: codec, sessions: sessions, refreshTTL: refreshTTL, log: log}
}

// Signup registers an account and opens a session, mirroring Login semantics.
// New accounts always get the standard role.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, *domain.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, pair, nil
}

// Login verifies credentials and opens a session. A missing account and a
// wrong password yield the same error; callers cannot probe for emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("user_id", user.ID).Msg("login with wrong password")
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, pair, nil
}

// Refresh rotates the session: the presented refresh token must verify and
// still be the stored current one. A verified token that lost the rotation
// race (or was already rotated out) is treated as stolen — every session for
// the subject is revoked before the caller sees the failure.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Principal vanished between issuance and use.
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("refresh: %w", err)
	}

	pair, newRef, err := s.codec.Issue(user)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh: issue pair: %w", err)
	}

	ok, err := s.sessions.Rotate(ctx, user.ID, claims.TokenID, newRef, s.refreshTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh: rotate session: %w", err)
	}
	if !ok {
		if err := s.sessions.Revoke(ctx, user.ID); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to revoke session after reuse")
		}
		s.log.Warn().Str("user_id", user.ID).Msg("refresh token reuse detected, session revoked")
		return nil, nil, domain.ErrRefreshReuse
	}

	s.log.Debug().Str("user_id", user.ID).Msg("session rotated")
	return user, pair, nil
}

// Logout revokes the user's session. Revoking an absent session is not an
// error, so logging out twice succeeds both times.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// CurrentUser loads the full profile for an authenticated subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, ref, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue pair: %w", err)
	}
	if err := s.sessions.Put(ctx, user.ID, ref, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return pair, nil
}
