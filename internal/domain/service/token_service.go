package service

import (
	"time"

	"scribe/internal/domain/entity"
)

// TokenService issues and verifies signed, time-bound bearer tokens.
type TokenService interface {
	// Issue signs a token for the subject and email in claims.
	// IssuedAt, ExpiresAt and ID are set by the issuer; values passed in are ignored.
	Issue(claims entity.TokenClaims) (string, error)

	// Verify checks signature, structure and expiry. Failures are one of
	// domainerrors.ErrTokenMalformed, ErrTokenExpired or ErrTokenBadSignature.
	Verify(token string) (*entity.TokenClaims, error)

	// ExpiryOf reads the exp claim without checking the signature.
	// ok is false when the string carries no readable expiry.
	ExpiryOf(token string) (expiresAt time.Time, ok bool)

	// TTL returns the validity window applied to issued tokens.
	TTL() time.Duration
}
