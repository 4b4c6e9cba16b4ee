package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_AuthErrorsCollapseTo401(t *testing.T) {
	authErrors := []error{
		domain.ErrInvalidCredentials,
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
		domain.ErrTokenTypeMismatch,
		domain.ErrRefreshReuse,
		domain.ErrUnauthenticated,
		fmt.Errorf("refresh: %w", domain.ErrTokenExpired),
	}

	for _, err := range authErrors {
		rec := render(t, err)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", err, rec.Code)
		}
		// The internal distinction must not leak to the client.
		if !strings.Contains(rec.Body.String(), "unauthorized") || strings.Contains(rec.Body.String(), err.Error()) {
			t.Fatalf("%v: expected generic body, got %s", err, rec.Body.String())
		}
	}
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrCategoryNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrCategoryExists, http.StatusConflict},
	}

	for _, tc := range cases {
		rec := render(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec := render(t, errors.New("mongo timeout: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal details leaked: %s", rec.Body.String())
	}
}

func TestErrorHandler_EchoError(t *testing.T) {
	rec := render(t, echo.NewHTTPError(http.StatusBadRequest, "email is required"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email is required") {
		t.Fatalf("expected echo message preserved, got %s", rec.Body.String())
	}
}
