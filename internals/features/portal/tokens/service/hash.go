package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken digests the encoded token string so rows can be found, revoked
// and audited without storing the bearer credential itself.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
