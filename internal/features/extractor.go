// Package features builds the fixed-order numeric feature vector for a
// (resume, vacancy) pair from match scores, experience and education
// signals, recency, and taxonomy rarity.
package features

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	// freshnessHalfLifeDays controls how fast candidate activity goes stale.
	freshnessHalfLifeDays = 30.0
	// freshnessFloor is the minimum freshness score; a long-dormant profile
	// still carries a little signal rather than zeroing out.
	freshnessFloor = 0.05
	// experienceMonthsScale caps the raw experience_months feature: ten
	// years of experience saturates the feature at 1.0.
	experienceMonthsScale = 120.0
	// recentExperienceWindowMonths is how far back a position's end date may
	// be and still count as recent.
	recentExperienceWindowMonths = 12
)

// degreeRank maps education levels to ordinal ranks for the
// education_level feature.
var degreeRank = map[string]int{
	"highschool": 1,
	"associate":  2,
	"bachelor":   3,
	"master":     4,
	"phd":        5,
}

const maxDegreeRank = 5

// Extractor computes ranking features. It is stateless apart from the
// taxonomy corpus used for rarity weighting and the reference time recency
// is measured against.
type Extractor struct {
	// corpus is the flattened merged taxonomy for the organization; rarity
	// is computed against it. May be nil, in which case rarity defaults.
	corpus types.MergedTaxonomy
	// now is the reference time for the recent_experience feature, fixed at
	// construction so one ranking run evaluates every candidate against the
	// same instant.
	now time.Time
}

// NewExtractor builds an extractor over the organization's merged taxonomy.
// A zero reference time defaults to the current time.
func NewExtractor(corpus types.MergedTaxonomy, now time.Time) *Extractor {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Extractor{corpus: corpus, now: now}
}

// Extract computes the full named feature vector. It is a pure function of
// its inputs: missing upstream signals yield documented defaults, never
// errors.
func (e *Extractor) Extract(match *types.MatchResult, vacancy *types.Vacancy, resume *types.Resume, daysSinceLastActivity float64) types.RankingFeatures {
	f := types.RankingFeatures{}

	if match != nil {
		f[types.FeatureOverallMatchScore] = match.UnifiedScore
		f[types.FeatureKeywordScore] = match.KeywordScore
		f[types.FeatureTFIDFScore] = match.TFIDFScore
		f[types.FeatureVectorScore] = match.VectorScore
		f[types.FeatureSkillsMatchRatio] = match.SkillsMatchRatio()
		f[types.FeatureSkillRarityScore] = e.skillRarity(match.MatchedSkills)
	} else {
		for _, name := range []string{
			types.FeatureOverallMatchScore, types.FeatureKeywordScore,
			types.FeatureTFIDFScore, types.FeatureVectorScore,
			types.FeatureSkillsMatchRatio, types.FeatureSkillRarityScore,
		} {
			f[name] = 0
		}
	}

	if resume != nil {
		f[types.FeatureExperienceMonths] = clamp01(float64(resume.TotalExperienceMonths()) / experienceMonthsScale)
		f[types.FeatureExperienceRelevance] = experienceRelevance(resume, vacancy)
		f[types.FeatureEducationLevel] = educationLevel(resume.Education)
		f[types.FeatureRecentExperience] = recentExperience(resume.Experience, e.now)
		f[types.FeatureCompletenessScore] = completeness(resume)
	} else {
		for _, name := range []string{
			types.FeatureExperienceMonths, types.FeatureExperienceRelevance,
			types.FeatureEducationLevel, types.FeatureRecentExperience,
			types.FeatureCompletenessScore,
		} {
			f[name] = 0
		}
	}

	f[types.FeatureTitleSimilarity] = titleSimilarity(resume, vacancy)
	f[types.FeatureFreshnessScore] = freshness(daysSinceLastActivity)

	return f
}

// experienceRelevance compares relevant experience months against the
// vacancy's minimum. Meeting the requirement saturates at 1.0; below it the
// score scales linearly toward 0. With no stated minimum, any experience at
// all scores 1.0.
func experienceRelevance(resume *types.Resume, vacancy *types.Vacancy) float64 {
	months := float64(resume.RelevantExperienceMonths())
	if vacancy == nil || vacancy.MinExperienceMonths <= 0 {
		if months > 0 {
			return 1.0
		}
		return 0
	}
	return clamp01(months / float64(vacancy.MinExperienceMonths))
}

// educationLevel maps the highest degree on the resume to [0,1].
func educationLevel(education []types.EducationEntry) float64 {
	best := 0
	for _, edu := range education {
		if rank, ok := degreeRank[strings.ToLower(strings.TrimSpace(edu.Level))]; ok && rank > best {
			best = rank
		}
	}
	return float64(best) / maxDegreeRank
}

// recentExperience is 1.0 when some position is current or ended within the
// recency window of the reference time, 0 otherwise. Unparseable end dates
// are skipped.
func recentExperience(entries []types.ExperienceEntry, now time.Time) float64 {
	for _, e := range entries {
		if e.EndedAt == "" && e.Months > 0 {
			return 1.0 // ongoing position
		}
		if months, ok := monthsSince(e.EndedAt, now); ok && months <= recentExperienceWindowMonths {
			return 1.0
		}
	}
	return 0
}

// monthsSince parses a "YYYY-MM" end date and returns whole months elapsed
// between it and the reference time. Future dates count as zero months ago.
func monthsSince(endedAt string, now time.Time) (int, bool) {
	if endedAt == "" {
		return 0, false
	}
	ended, err := time.Parse("2006-01", endedAt)
	if err != nil {
		return 0, false
	}
	months := (now.Year()-ended.Year())*12 + int(now.Month()) - int(ended.Month())
	if months < 0 {
		months = 0
	}
	return months, true
}

// freshness decays exponentially with days since the candidate's last
// activity, bottoming out at the configured floor. Negative input (clock
// skew) counts as fully fresh.
func freshness(daysSinceLastActivity float64) float64 {
	if daysSinceLastActivity <= 0 {
		return 1.0
	}
	score := math.Exp(-math.Ln2 * daysSinceLastActivity / freshnessHalfLifeDays)
	if score < freshnessFloor {
		return freshnessFloor
	}
	return score
}

// completeness is the fraction of expected resume sections present:
// contact, skills, experience, education.
func completeness(resume *types.Resume) float64 {
	present := 0
	if resume.HasContact {
		present++
	}
	if len(resume.Skills) > 0 {
		present++
	}
	if len(resume.Experience) > 0 {
		present++
	}
	if len(resume.Education) > 0 {
		present++
	}
	return float64(present) / 4.0
}

// titleSimilarity is the Jaccard overlap of normalized title tokens.
func titleSimilarity(resume *types.Resume, vacancy *types.Vacancy) float64 {
	if resume == nil || vacancy == nil {
		return 0
	}
	a := tokenSet(resume.Title)
	b := tokenSet(vacancy.Title)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// skillRarity weights matched skills by inverse frequency against the
// taxonomy corpus: a skill appearing in many synonym families is common, a
// skill in none is maximally rare. Returns the mean rarity of matched
// skills, 0 when nothing matched.
func (e *Extractor) skillRarity(matchedSkills []string) float64 {
	if len(matchedSkills) == 0 {
		return 0
	}
	if len(e.corpus) == 0 {
		// No corpus to compare against: treat every matched skill as
		// averagely rare rather than propagating a missing signal.
		return 0.5
	}

	total := 0.0
	for _, skill := range matchedSkills {
		total += 1.0 / (1.0 + float64(e.familyCount(skill)))
	}
	return total / float64(len(matchedSkills))
}

// familyCount counts how many synonym families mention the skill.
func (e *Extractor) familyCount(skill string) int {
	norm := taxonomy.Normalize(skill)
	count := 0
	for canonical, variants := range e.corpus {
		if taxonomy.Normalize(canonical) == norm {
			count++
			continue
		}
		for _, v := range variants {
			if taxonomy.Normalize(v) == norm {
				count++
				break
			}
		}
	}
	return count
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[strings.Trim(tok, ".,;:()/")] = true
	}
	delete(set, "")
	return set
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
