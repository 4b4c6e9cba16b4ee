package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellr/marketplace-api/internal/api/cookie"
	"github.com/sellr/marketplace-api/internal/api/metrics"
	"github.com/sellr/marketplace-api/internal/core/domain"
	"github.com/sellr/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	auth    ports.AuthService
	cookies *cookie.Manager
}

func NewAuthHandler(auth ports.AuthService, cookies *cookie.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse deliberately omits the tokens: they travel as cookies only.
type sessionResponse struct {
	User    domain.UserSummary `json:"user"`
	Message string             `json:"message,omitempty"`
}

// Signup registers an account and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.SignupsTotal.WithLabelValues("success").Inc()

	h.cookies.Write(c, pair)
	return c.JSON(http.StatusCreated, sessionResponse{User: user.Summary(), Message: "signup successful"})
}

// Login verifies credentials and sets the session cookie pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.cookies.Write(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{User: user.Summary(), Message: "login successful"})
}

// Refresh rotates the session using the refresh cookie.
//
// @Summary      Refresh the token pair
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, ok := h.cookies.ReadRefresh(c)
	if !ok {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		return domain.ErrUnauthenticated
	}

	user, pair, err := h.auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrRefreshReuse) {
			metrics.SessionsRevokedTotal.WithLabelValues("reuse_detected").Inc()
		}
		// The presented cookies are dead either way.
		h.cookies.Clear(c)
		return err
	}
	metrics.RefreshesTotal.WithLabelValues("success").Inc()

	h.cookies.Write(c, pair)
	return c.JSON(http.StatusOK, sessionResponse{User: user.Summary(), Message: "tokens refreshed"})
}

// Logout revokes the session and clears both cookies. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.WithLabelValues("logout").Inc()

	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logout successful"})
}

// Session reports whether the access token is valid. Stateless: no store
// lookup, nothing rotated or extended.
//
// @Summary      Check the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	userID, email, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:    domain.UserSummary{ID: userID, Email: email, Role: role},
		Message: "session is active",
	})
}

// Verify is an alias of Session kept for frontend compatibility.
//
// @Summary      Verify the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	userID, email, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:    domain.UserSummary{ID: userID, Email: email, Role: role},
		Message: "token is valid",
	})
}

// Me returns the full profile of the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Principal vanished since the token was issued.
			return domain.ErrUnauthenticated
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}
