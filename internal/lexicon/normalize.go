// Package lexicon turns raw player text into something the trigger tables can
// reason about: a normalized query, a strict-validity verdict against the
// phrase dictionary, and a set of substring feature flags.
package lexicon

import "strings"

// Normalize lower-cases raw, trims surrounding whitespace and replaces every
// underscore with a space.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, "_", " ")
}
