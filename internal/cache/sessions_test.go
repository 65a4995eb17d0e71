package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(rdb), mr
}

func TestSessionStore_RevokeAndCheck(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.IsRevoked(ctx, "jti-1"))

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	assert.True(t, store.IsRevoked(ctx, "jti-1"))
	assert.False(t, store.IsRevoked(ctx, "jti-2"))
}

func TestSessionStore_RevocationExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	assert.True(t, store.IsRevoked(ctx, "jti-1"))

	// Once the token itself would have expired, the entry is gone.
	mr.FastForward(2 * time.Minute)
	assert.False(t, store.IsRevoked(ctx, "jti-1"))
}

func TestSessionStore_ExpiredTokenNotStored(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", 0))
	require.NoError(t, store.Revoke(ctx, "jti-2", -time.Minute))

	assert.Empty(t, mr.Keys())
}

func TestSessionStore_NilClientFailsOpen(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	assert.False(t, store.IsRevoked(ctx, "jti-1"))
}

func TestSessionStore_UnreachableRedisFailsOpen(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))
	mr.Close()

	// Losing Redis must not lock every user out.
	assert.False(t, store.IsRevoked(ctx, "jti-1"))
}
