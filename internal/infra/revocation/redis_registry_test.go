package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRegistry(t *testing.T, now time.Time) (*redisRegistry, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return newRedisRegistry(rdb, "revoked:", time.Minute, func() time.Time { return now }), mr
}

func TestRedisRegistry_RevokeThenIsRevoked(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, mr := newTestRedisRegistry(t, now)

	revoked, err := registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, registry.Revoke(ctx, "token", now.Add(time.Hour)))

	revoked, err = registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.True(t, revoked)

	key := "revoked:" + tokenDigest("token")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestRedisRegistry_EntryExpiresWithToken(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, mr := newTestRedisRegistry(t, now)

	require.NoError(t, registry.Revoke(ctx, "token", now.Add(10*time.Minute)))

	mr.FastForward(10*time.Minute + time.Second)

	revoked, err := registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRegistry_MinRetention(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, mr := newTestRedisRegistry(t, now)

	require.NoError(t, registry.Revoke(ctx, "stale", now.Add(-time.Hour)))

	revoked, err := registry.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Minute, mr.TTL("revoked:"+tokenDigest("stale")))
}

func TestRedisRegistry_RevokeTwiceOnlyExtends(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, mr := newTestRedisRegistry(t, now)
	key := "revoked:" + tokenDigest("token")

	require.NoError(t, registry.Revoke(ctx, "token", now.Add(time.Hour)))
	require.NoError(t, registry.Revoke(ctx, "token", now.Add(10*time.Minute)))
	assert.Equal(t, time.Hour, mr.TTL(key))

	require.NoError(t, registry.Revoke(ctx, "token", now.Add(2*time.Hour)))
	assert.Equal(t, 2*time.Hour, mr.TTL(key))
}

func TestRedisRegistry_PurgeIsNoop(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, _ := newTestRedisRegistry(t, now)

	require.NoError(t, registry.Revoke(ctx, "token", now.Add(time.Hour)))

	purged, err := registry.Purge(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestRedisRegistry_BackendUnavailable(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	registry, mr := newTestRedisRegistry(t, now)
	mr.Close()

	err := registry.Revoke(ctx, "token", now.Add(time.Hour))
	assert.Error(t, err)

	revoked, err := registry.IsRevoked(ctx, "token")
	assert.Error(t, err)
	assert.False(t, revoked)
}
