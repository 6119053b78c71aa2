package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint derives a stable client identifier from connection attributes.
// The same client yields the same value; a hijacked token presented from a
// different client yields a different one.
func Fingerprint(clientIP, userAgent string) string {
	sum := sha256.Sum256([]byte(clientIP + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}
