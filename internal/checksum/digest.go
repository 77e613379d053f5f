// Package checksum fingerprints landing feed content so runs can log and
// compare exactly what they ingested.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortLen is how many hex characters Short keeps. Twelve is enough to
// distinguish feed drops in logs without drowning them.
const shortLen = 12

// Digest computes the SHA-256 of raw feed content as a hex string.
func Digest(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short returns an abbreviated digest suitable for log lines and reports.
func Short(content []byte) string {
	d := Digest(content)
	return d[:shortLen]
}
