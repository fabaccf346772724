package revocation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_RevokeThenIsRevoked(t *testing.T) {
	ctx := context.Background()
	registry := newMemoryRegistry()

	revoked, err := registry.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, registry.Revoke(ctx, "token-a", time.Now().Add(time.Hour)))

	revoked, err = registry.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = registry.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked, "lookup is by exact value")
}

func TestMemoryRegistry_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	registry := newMemoryRegistry()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, registry.Revoke(ctx, "token", exp))
	require.NoError(t, registry.Revoke(ctx, "token", exp))

	assert.Equal(t, 1, registry.Len())
	revoked, err := registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRegistry_LaterExpiryWins(t *testing.T) {
	ctx := context.Background()
	registry := newMemoryRegistry()
	base := time.Unix(1_700_000_000, 0)

	require.NoError(t, registry.Revoke(ctx, "token", base.Add(2*time.Hour)))
	require.NoError(t, registry.Revoke(ctx, "token", base.Add(time.Hour)))

	purged, err := registry.Purge(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, purged)

	revoked, err := registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryRegistry_Purge(t *testing.T) {
	ctx := context.Background()
	registry := newMemoryRegistry()
	now := time.Unix(1_700_000_000, 0)

	require.NoError(t, registry.Revoke(ctx, "expired", now.Add(-time.Second)))
	require.NoError(t, registry.Revoke(ctx, "boundary", now))
	require.NoError(t, registry.Revoke(ctx, "live", now.Add(time.Second)))

	purged, err := registry.Purge(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)
	assert.Equal(t, 1, registry.Len())

	revoked, _ := registry.IsRevoked(ctx, "live")
	assert.True(t, revoked)
	revoked, _ = registry.IsRevoked(ctx, "expired")
	assert.False(t, revoked)
}

func TestMemoryRegistry_ConcurrentRevokeIsVisible(t *testing.T) {
	ctx := context.Background()
	registry := newMemoryRegistry()
	exp := time.Now().Add(time.Hour)

	const workers = 32

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			token := fmt.Sprintf("token-%d", i)
			assert.NoError(t, registry.Revoke(ctx, token, exp))

			// A revoke that has returned must be observed by this and every later lookup.
			revoked, err := registry.IsRevoked(ctx, token)
			assert.NoError(t, err)
			assert.True(t, revoked)
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := registry.IsRevoked(ctx, fmt.Sprintf("token-%d", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, registry.Len())
	for i := range workers {
		revoked, err := registry.IsRevoked(ctx, fmt.Sprintf("token-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestTokenDigest(t *testing.T) {
	assert.Equal(t, tokenDigest("abc"), tokenDigest("abc"))
	assert.NotEqual(t, tokenDigest("abc"), tokenDigest("abd"))
	assert.Len(t, tokenDigest("abc"), 64)
	assert.NotContains(t, tokenDigest("secret-token"), "secret-token")
}
