package domain

import "time"

// TokenType discriminates access tokens from refresh tokens. A token of one
// type is never accepted where the other is required.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenPair holds the two signed tokens minted per login or refresh. The raw
// strings travel only as cookies; response bodies never repeat them.
type TokenPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

// TokenClaims is the verified identity carried by a token, decoupled from the
// signing format so handlers and middleware never touch JWT types directly.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
