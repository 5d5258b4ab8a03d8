// Package matching decides skill equivalence between resume skill lists and
// vacancy requirements using a merged taxonomy.
package matching

import (
	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// IsMatch reports whether any resume skill satisfies the required skill.
// A direct normalized-equality match is always checked first, so matching
// works with a nil or empty taxonomy; the taxonomy only ever adds matches.
func IsMatch(resumeSkills []string, required string, merged types.MergedTaxonomy) bool {
	return FindMatchingVariant(resumeSkills, required, merged) != ""
}

// FindMatchingVariant returns the resume skill that satisfies the required
// skill, in the candidate's own spelling, or "" when none does. The scan is
// a single pass in the resume's original list order, so when several resume
// skills qualify the first-listed one wins regardless of whether it is an
// exact spelling or a taxonomy variant.
func FindMatchingVariant(resumeSkills []string, required string, merged types.MergedTaxonomy) string {
	reqNorm := taxonomy.Normalize(required)
	if reqNorm == "" {
		return ""
	}

	// Direct equality stays taxonomy-independent; the equivalence set only
	// ever adds matches.
	var equivalent map[string]bool
	if len(merged) > 0 {
		equivalent = taxonomy.EquivalenceSet(required, merged)
	}

	for _, skill := range resumeSkills {
		norm := taxonomy.Normalize(skill)
		if norm == reqNorm || equivalent[norm] {
			return skill
		}
	}
	return ""
}
