package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sellr/marketplace-api/internal/api/handler"
	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

type stubUserService struct {
	getFn           func(ctx context.Context, id string) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	updateFn        func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error)
	updateProfileFn func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, upd)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, id, upd)
}

func patchUserContext(e *echo.Echo, targetID, body, callerID, callerRole string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPatch, "/users/"+targetID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	c.Set("user_id", callerID)
	c.Set("role", callerRole)
	return c, rec
}

func TestUserHandler_Update_ForbiddenForStranger(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			t.Fatalf("service must not be called for a forbidden update")
			return nil, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := patchUserContext(e, "user_1", `{"first_name":"Mallory"}`, "user_2", domain.RoleUser)
	run(e, c, h.Update)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserHandler_Update_OwnerAllowed(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			if id != "user_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: id, FirstName: *upd.FirstName, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := patchUserContext(e, "user_1", `{"first_name":"Bob"}`, "user_1", domain.RoleUser)
	run(e, c, h.Update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Update_AdminOnOtherRecord(t *testing.T) {
	e := newEcho()
	called := false
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			called = true
			return &domain.User{ID: id, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := patchUserContext(e, "user_1", `{"first_name":"Bob"}`, "admin_1", domain.RoleAdmin)
	run(e, c, h.Update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatalf("admin update must reach the service")
	}
}

func TestUserHandler_Update_RoleDroppedForNonAdmin(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			if upd.Role != nil {
				t.Fatalf("role submitted by a non-admin must be dropped, got %q", *upd.Role)
			}
			return &domain.User{ID: id, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	// Owner tries to promote themselves.
	c, rec := patchUserContext(e, "user_1", `{"role":"admin"}`, "user_1", domain.RoleUser)
	run(e, c, h.Update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Update_AdminRoleChangeHonoured(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			if upd.Role == nil || *upd.Role != domain.RoleAdmin {
				t.Fatalf("admin-submitted role change must pass through, got %+v", upd.Role)
			}
			return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	c, rec := patchUserContext(e, "user_1", `{"role":"admin"}`, "admin_1", domain.RoleAdmin)
	run(e, c, h.Update)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_UpdateProfile_ForbiddenForStranger(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			t.Fatalf("service must not be called for a forbidden update")
			return nil, nil
		},
	}
	h := handler.NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/users/user_1/profile", strings.NewReader(`{"first_name":"Mallory"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user_1")
	c.Set("user_id", "user_2")
	c.Set("role", domain.RoleUser)
	run(e, c, h.UpdateProfile)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_OwnerAllowed(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
			if upd.ProfilePic == nil || *upd.ProfilePic != "https://cdn.example.com/p.png" {
				t.Fatalf("unexpected update: %+v", upd)
			}
			return &domain.User{ID: id, Role: domain.RoleUser}, nil
		},
	}
	h := handler.NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/users/user_1/profile", strings.NewReader(`{"profile_pic":"https://cdn.example.com/p.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user_1")
	c.Set("user_id", "user_1")
	c.Set("role", domain.RoleUser)
	run(e, c, h.UpdateProfile)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
