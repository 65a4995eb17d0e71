package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records revoked session token IDs (JTIs) so an explicit
// log-out invalidates the token before its natural expiry. Revocation is
// best-effort: without Redis the store fails open and log-out degrades to
// clearing the client's cookie.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore returns a SessionStore backed by the given client, which may be nil.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

const revokedKeyPrefix = "session:revoked:"

// Revoke marks the token ID as revoked until the token would have expired anyway.
func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked. Errors fail open.
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil || jti == "" {
		return false
	}
	_, err := s.rdb.Get(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Unreachable Redis must not lock every user out.
			return false
		}
		return false
	}
	return true
}
