package util

import (
	"strings"
	"unicode"
)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail cleans a spoken or typed address transcript into address
// form: lowercase, substitute a spoken " at " with '@' when no '@' is
// present yet, then drop all whitespace. Best effort only, no RFC
// validation; a malformed input comes back malformed. Idempotent, since a
// normalized address contains '@' and no whitespace.
func NormalizeEmail(raw string) string {
	clean := strings.ToLower(raw)

	// Only substitute the spoken "at" when the transcript carries no '@'
	// yet, otherwise addresses like "math@uni.edu" would be mangled.
	if !strings.Contains(clean, "@") {
		clean = strings.ReplaceAll(clean, " at ", "@")
		clean = strings.ReplaceAll(clean, " at", "@")
	}

	var builder strings.Builder
	builder.Grow(len(clean))
	for _, r := range clean {
		if unicode.IsSpace(r) {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
