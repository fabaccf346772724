package revocation

import (
	"context"
	"time"

	"scribe/internal/domain/service"
	"scribe/internal/errors"

	"github.com/redis/go-redis/v9"
)

// redisRegistry stores revoked token digests in redis so every instance sees the same set.
// Entries carry a redis TTL matching the token's remaining lifetime.
type redisRegistry struct {
	rdb          redis.UniversalClient
	keyPrefix    string
	minRetention time.Duration
	now          func() time.Time
}

// NewRedisRegistry creates a registry backed by rdb.
func NewRedisRegistry(rdb redis.UniversalClient, keyPrefix string, minRetention time.Duration) service.RevocationRegistry {
	return newRedisRegistry(rdb, keyPrefix, minRetention, time.Now)
}

func newRedisRegistry(rdb redis.UniversalClient, keyPrefix string, minRetention time.Duration, now func() time.Time) *redisRegistry {
	return &redisRegistry{
		rdb:          rdb,
		keyPrefix:    keyPrefix,
		minRetention: minRetention,
		now:          now,
	}
}

// Revoke stores the digest until the token expires, but never for less than minRetention.
// When the key already exists its TTL is only ever extended.
func (r *redisRegistry) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	key := r.key(token)
	ttl := r.retention(expiresAt)

	created, err := r.rdb.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return errors.Wrap(err, "failed to store revoked token")
	}
	if created {
		return nil
	}

	if err := r.rdb.ExpireGT(ctx, key, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to extend revoked token")
	}

	return nil
}

// IsRevoked reports whether the token's digest is present.
func (r *redisRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to look up revoked token")
	}

	return n > 0, nil
}

// Purge is a no-op; redis expires the keys itself.
func (r *redisRegistry) Purge(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (r *redisRegistry) key(token string) string {
	return r.keyPrefix + tokenDigest(token)
}

func (r *redisRegistry) retention(expiresAt time.Time) time.Duration {
	ttl := expiresAt.Sub(r.now())
	if ttl < r.minRetention {
		ttl = r.minRetention
	}
	// SET rejects sub-millisecond expirations.
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}

	return ttl
}
