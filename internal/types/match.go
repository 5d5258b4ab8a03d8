package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// WeightProfile controls how the three match signals combine into one score.
// The weights conceptually sum to 1.0; this is not enforced numerically, but
// resolvers warn when a profile drifts from it.
type WeightProfile struct {
	ID             uuid.UUID  `json:"id,omitempty"`
	Name           string     `json:"name"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"` // nil for built-in presets
	VacancyID      *uuid.UUID `json:"vacancy_id,omitempty"`      // set for vacancy-bound overrides
	KeywordWeight  float64    `json:"keyword_weight" validate:"gte=0"`
	TFIDFWeight    float64    `json:"tfidf_weight" validate:"gte=0"`
	VectorWeight   float64    `json:"vector_weight" validate:"gte=0"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

// Validate checks the profile for invalid configuration (negative weights).
// A weight sum other than 1.0 is deliberately not an error here.
func (p *WeightProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// WeightSum returns the sum of the three weights.
func (p *WeightProfile) WeightSum() float64 {
	return p.KeywordWeight + p.TFIDFWeight + p.VectorWeight
}

// MatchResult holds the per-pair match signals and the skill-level breakdown
// for one (resume, vacancy) pair. Once a ranking feature vector has been
// extracted from it, the result is treated as an immutable snapshot.
type MatchResult struct {
	ResumeID      uuid.UUID `json:"resume_id"`
	VacancyID     uuid.UUID `json:"vacancy_id"`
	KeywordScore  float64   `json:"keyword_score"` // each raw signal is 0-1
	TFIDFScore    float64   `json:"tfidf_score"`
	VectorScore   float64   `json:"vector_score"`
	UnifiedScore  float64   `json:"unified_score"`
	MatchedSkills []string  `json:"matched_skills"` // required skills satisfied, original spelling
	MissingSkills []string  `json:"missing_skills"`
	ProfileName   string    `json:"profile_name,omitempty"`
	ComputedAt    time.Time `json:"computed_at,omitempty"`
}

// SkillsMatchRatio returns matched / total required, 0 when nothing is required.
func (m *MatchResult) SkillsMatchRatio() float64 {
	total := len(m.MatchedSkills) + len(m.MissingSkills)
	if total == 0 {
		return 0
	}
	return float64(len(m.MatchedSkills)) / float64(total)
}
