package furigo

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// SelectionDigest returns a short, log-safe fingerprint of a selection.
func SelectionDigest(text string) string {
	return HashText(text)[:12]
}
