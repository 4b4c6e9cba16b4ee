package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the single currently-valid refresh-token reference per
// user. Key format: session:<user_id>, value: the refresh token's JTI, TTL
// matching the refresh token lifetime.
type SessionStore struct {
	client *redis.Client
}

// rotateScript is the per-user compare-and-swap: replace the stored reference
// only if the presented one is still current. Running as a single script
// makes the check and the swap atomic, so two concurrent rotations with the
// same old reference can never both succeed.
var rotateScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put unconditionally records ref as the current session reference,
// displacing any previous one.
func (s *SessionStore) Put(ctx context.Context, userID, ref string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), ref, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Get returns the current reference, or "" when the user has no session.
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return val, nil
}

// Rotate atomically swaps currentRef for newRef. It returns false when
// currentRef is no longer the stored reference, including when no session
// exists at all.
func (s *SessionStore) Rotate(ctx context.Context, userID, currentRef, newRef string, ttl time.Duration) (bool, error) {
	res, err := rotateScript.Run(ctx, s.client, []string{s.key(userID)}, currentRef, newRef, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rotate session: %w", err)
	}
	return res == 1, nil
}

// Revoke deletes the session record. Deleting an absent record is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(userID string) string {
	return sessionKeyPrefix + userID
}
