package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of a token string.
// Refresh tokens and API tokens are stored hashed so a database leak does
// not expose usable credentials; SHA-256 keeps the lookup deterministic.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
