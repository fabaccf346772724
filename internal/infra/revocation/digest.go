// Package revocation implements the registry of tokens invalidated before their natural expiry.
package revocation

import (
	"crypto/sha256"
	"encoding/hex"
)

// tokenDigest is the key a token is stored under. Raw tokens are never kept.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
