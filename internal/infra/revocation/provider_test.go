package revocation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"scribe/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newProviderParams(t *testing.T, revocation *config.RevocationConfig) (Params, *fxtest.Lifecycle) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{Revocation: revocation}

	return Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, lc
}

func TestNew_MemoryBackend(t *testing.T) {
	params, lc := newProviderParams(t, &config.RevocationConfig{
		Backend:       config.RevocationBackendMemory,
		SweepInterval: time.Hour,
	})

	registry, err := New(params)
	require.NoError(t, err)
	assert.IsType(t, &memoryRegistry{}, registry)

	lc.RequireStart()
	defer lc.RequireStop()

	ctx := context.Background()
	require.NoError(t, registry.Revoke(ctx, "token", time.Now().Add(time.Minute)))

	revoked, err := registry.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestNew_RedisBackend(t *testing.T) {
	server := miniredis.RunT(t)

	params, lc := newProviderParams(t, &config.RevocationConfig{
		Backend:      config.RevocationBackendRedis,
		MinRetention: time.Minute,
		Redis: config.RedisConfig{
			Addr:      server.Addr(),
			KeyPrefix: "revoked:",
		},
	})

	registry, err := New(params)
	require.NoError(t, err)
	assert.IsType(t, &redisRegistry{}, registry)

	lc.RequireStart()
	defer lc.RequireStop()

	require.NoError(t, registry.Revoke(context.Background(), "token", time.Now().Add(time.Hour)))
	assert.True(t, server.Exists("revoked:"+tokenDigest("token")))
}

func TestNew_RedisUnreachableFailsStart(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	params, lc := newProviderParams(t, &config.RevocationConfig{
		Backend: config.RevocationBackendRedis,
		Redis:   config.RedisConfig{Addr: addr},
	})

	_, err := New(params)
	require.NoError(t, err)

	err = lc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping redis")
}

func TestNew_RejectsMissingOrUnknownBackend(t *testing.T) {
	params, _ := newProviderParams(t, nil)
	_, err := New(params)
	require.Error(t, err)

	params, _ = newProviderParams(t, &config.RevocationConfig{Backend: "memcached"})
	_, err = New(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown revocation backend")
}
