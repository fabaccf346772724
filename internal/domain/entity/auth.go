package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is the identity data carried by a signed bearer token.
type TokenClaims struct {
	ID        string    // Unique token id (jti), keeps tokens distinct within the same second.
	Subject   uuid.UUID // The user the token was issued for.
	Email     string    // The user's email at issuance time.
	IssuedAt  time.Time // Set by the issuer.
	ExpiresAt time.Time // Set by the issuer; the token is invalid from this instant on.
}

// Principal is the verified caller identity handed to downstream handlers.
// It deliberately carries nothing but the user id.
type Principal struct {
	UserID string `json:"userId"`
}

// NewPrincipal builds the downstream identity from verified claims.
func NewPrincipal(claims *TokenClaims) *Principal {
	return &Principal{UserID: claims.Subject.String()}
}
