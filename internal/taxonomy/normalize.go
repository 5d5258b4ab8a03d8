// Package taxonomy resolves skill-name equivalence across the static,
// industry, and organization-specific synonym vocabularies.
package taxonomy

import "strings"

// Normalize reduces a skill name to the canonical comparison form: trimmed,
// internal whitespace collapsed to single spaces, lowercased. Two skill
// strings are considered the same skill iff their normalized forms are equal.
// Normalize is idempotent.
func Normalize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// normalizeSet builds a membership set of normalized names.
func normalizeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if norm := Normalize(n); norm != "" {
			set[norm] = true
		}
	}
	return set
}
