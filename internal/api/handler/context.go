package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellr/marketplace-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. A
// missing user_id or role means the middleware did not run (or a route is
// misregistered) — fail closed with 401 before any service call.
func ctxClaims(c echo.Context) (userID, email, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ = c.Get("email").(string)
	return userID, email, role, nil
}

// ownerOrAdmin enforces the resource-ownership rule: a user may act on their
// own record, an admin on any.
func ownerOrAdmin(userID, role, resourceID string) error {
	if role == domain.RoleAdmin || userID == resourceID {
		return nil
	}
	return domain.ErrForbidden
}
