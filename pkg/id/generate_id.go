package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Used as the public identifier of loan requests and offers.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s has the NewID32 shape.
func Valid(s string) bool { return reHex32.MatchString(s) }
