package ports

import (
	"context"
	"time"
)

// SessionStore persists the single currently-valid refresh-token reference per
// user. At most one reference is current at a time; storing a new one always
// displaces the old.
//
// Rotate is the fused compare-and-swap used during refresh: it replaces the
// stored reference only when the presented one is still current, and the check
// and the swap are atomic per user. A false result means the presented
// reference was already rotated out (or revoked) and must be treated as reuse.
type SessionStore interface {
	Put(ctx context.Context, userID, ref string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Rotate(ctx context.Context, userID, currentRef, newRef string, ttl time.Duration) (bool, error)
	Revoke(ctx context.Context, userID string) error
}
