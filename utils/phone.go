package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizePhone strips a single leading plus sign. Applying it twice is a no-op
// on any number that does not start with "++".
func NormalizePhone(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+")
}

// TruncateRunes returns at most n characters of s
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// MaskSecret keeps the first n characters of a secret for display
func MaskSecret(secret string, n int) string {
	if secret == "" {
		return ""
	}
	return TruncateRunes(secret, n) + "..."
}
