package matching

import (
	"github.com/jonathan/candidate-ranker/internal/types"
)

// SkillBreakdown lists which vacancy requirements a resume satisfies.
// Matched holds the satisfying resume skills in their original spelling;
// Missing holds the unsatisfied requirements as written in the vacancy.
type SkillBreakdown struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// BreakdownSkills evaluates every required skill against the resume's skill
// list. Requirements are processed in vacancy order, so the breakdown is
// deterministic for identical inputs.
func BreakdownSkills(resumeSkills, requiredSkills []string, merged types.MergedTaxonomy) SkillBreakdown {
	b := SkillBreakdown{
		Matched: make([]string, 0, len(requiredSkills)),
		Missing: make([]string, 0),
	}
	for _, required := range requiredSkills {
		if variant := FindMatchingVariant(resumeSkills, required, merged); variant != "" {
			b.Matched = append(b.Matched, variant)
		} else {
			b.Missing = append(b.Missing, required)
		}
	}
	return b
}

// MatchRatio returns matched / total requirements, 0 when none are required.
func (b SkillBreakdown) MatchRatio() float64 {
	total := len(b.Matched) + len(b.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(b.Matched)) / float64(total)
}
