package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentity returns the canonical form of an organizer or participant
// identity: trimmed, lower-cased and NFC-composed. It is idempotent.
func NormalizeIdentity(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

// SameIdentity reports whether a and b name the same identity, ignoring case,
// surrounding whitespace and accent composition.
func SameIdentity(a, b string) bool {
	return NormalizeIdentity(a) == NormalizeIdentity(b)
}
