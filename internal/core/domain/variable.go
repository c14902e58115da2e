package domain

import (
	"strings"
	"unicode"
)

// FallbackVariableName is returned when a label has no usable characters.
const FallbackVariableName = "variable"

// SanitizeVariableName converts a human-readable category label into an
// identifier accepted by statistical packages (SPSS, Stata, R).
//
// The label is trimmed and lowercased, every run of whitespace or hyphens
// becomes a single underscore, and anything outside [a-z0-9_] is dropped.
// A leading digit gets an underscore prefix. The function is total and
// idempotent; an empty result falls back to FallbackVariableName.
func SanitizeVariableName(label string) string {
	lowered := strings.ToLower(strings.TrimSpace(label))

	var b strings.Builder
	b.Grow(len(lowered))

	inSeparator := false
	for _, r := range lowered {
		if unicode.IsSpace(r) || r == '-' {
			if !inSeparator {
				b.WriteByte('_')
				inSeparator = true
			}
			continue
		}
		inSeparator = false
		if isIdentifierRune(r) {
			b.WriteRune(r)
		}
	}

	result := b.String()
	if result == "" {
		return FallbackVariableName
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}
