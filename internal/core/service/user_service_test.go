package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_Update_DropsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seeded, err := repo.Create(context.Background(), &domain.User{Email: "bob@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := svc.Update(context.Background(), seeded.ID, ports.UserUpdate{
		FirstName: strPtr("Bob"),
		Role:      strPtr("superuser"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "Bob" {
		t.Fatalf("first name not applied: %+v", user)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unknown role must be dropped, got %s", user.Role)
	}
}

func TestUserService_Update_ValidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seeded, err := repo.Create(context.Background(), &domain.User{Email: "bob@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := svc.Update(context.Background(), seeded.ID, ports.UserUpdate{Role: strPtr(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}

func TestUserService_UpdateProfile_NeverTouchesEmailOrRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seeded, err := repo.Create(context.Background(), &domain.User{Email: "bob@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.UserUpdate{
		Email:      strPtr("evil@example.com"),
		Role:       strPtr(domain.RoleAdmin),
		ProfilePic: strPtr("https://cdn.example.com/bob.png"),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.Email != "bob@example.com" || user.Role != domain.RoleUser {
		t.Fatalf("profile update must not change email or role: %+v", user)
	}
	if user.ProfilePic != "https://cdn.example.com/bob.png" {
		t.Fatalf("profile pic not applied: %+v", user)
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
