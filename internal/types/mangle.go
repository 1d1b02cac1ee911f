package types

import "strings"

// SanitizeIdent maps name onto a mangled-name-safe identifier by
// replacing any rune outside [A-Za-z0-9_] with "_". Used by both
// monomorphized function names and
// trait-method mangled names.
func SanitizeIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
