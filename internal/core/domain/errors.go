package domain

import "errors"

// Auth errors. All of them surface to HTTP clients as a generic 401; the
// distinctions exist for logging and metrics only.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenTypeMismatch  = errors.New("token type mismatch")
	ErrRefreshReuse       = errors.New("refresh token reuse detected")
	ErrUnauthenticated    = errors.New("authentication required")
)

var (
	ErrForbidden        = errors.New("access forbidden")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)
