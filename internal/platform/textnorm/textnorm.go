// Package textnorm folds display text into a comparison form.
package textnorm

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips combining diacritical marks ("José" -> "Jose") and keeps
// base letters and case. The result is for matching only, never for display.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Chains carry state and are not safe to share between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
