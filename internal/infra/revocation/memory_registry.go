package revocation

import (
	"context"
	"sync"
	"time"

	"scribe/internal/domain/service"
)

// memoryRegistry keeps revoked token digests in process memory.
type memoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]time.Time // digest -> token expiry
}

// NewMemoryRegistry creates an empty in-process registry.
func NewMemoryRegistry() service.RevocationRegistry {
	return newMemoryRegistry()
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{entries: make(map[string]time.Time)}
}

// Revoke records the token. A second revoke keeps the later expiry.
func (r *memoryRegistry) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	key := tokenDigest(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.entries[key]; ok && !expiresAt.After(current) {
		return nil
	}
	r.entries[key] = expiresAt

	return nil
}

// IsRevoked reports whether the token has been revoked and not yet purged.
func (r *memoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	key := tokenDigest(token)

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]

	return ok, nil
}

// Purge drops every entry whose token has expired by now.
func (r *memoryRegistry) Purge(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for key, expiresAt := range r.entries {
		if !expiresAt.After(now) {
			delete(r.entries, key)
			purged++
		}
	}

	return purged, nil
}

// Len returns the number of live entries.
func (r *memoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
