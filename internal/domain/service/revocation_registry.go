package service

import (
	"context"
	"time"
)

// RevocationRegistry records tokens invalidated before their natural expiry.
// Lookups are by exact token value. A Revoke that has returned is visible to every later IsRevoked.
type RevocationRegistry interface {
	// Revoke marks token as invalid until expiresAt. Revoking twice is a no-op.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Purge drops entries whose expiry is not after now and returns how many were dropped.
	Purge(ctx context.Context, now time.Time) (int, error)
}
