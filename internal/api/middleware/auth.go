package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sellr/marketplace-api/internal/api/cookie"
	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

// Auth validates the access token and injects claims into context.
//
// The token comes from the Authorization header (bearer) or, for browser
// clients, from the access_token cookie. The check is stateless: the session
// store is never consulted, and nothing is rotated or extended.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				if ck, err := c.Cookie(cookie.AccessCookie); err == nil && ck.Value != "" {
					raw, ok = ck.Value, true
				}
			}
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := codec.Verify(raw, domain.TokenTypeAccess)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
