package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Feature names, in canonical vector order. Consumers look features up by
// name, never by position, but persisted artifacts must carry exactly this
// name set so versions stay comparable.
const (
	FeatureOverallMatchScore   = "overall_match_score"
	FeatureKeywordScore        = "keyword_score"
	FeatureTFIDFScore          = "tfidf_score"
	FeatureVectorScore         = "vector_score"
	FeatureSkillsMatchRatio    = "skills_match_ratio"
	FeatureExperienceMonths    = "experience_months"
	FeatureExperienceRelevance = "experience_relevance"
	FeatureEducationLevel      = "education_level"
	FeatureRecentExperience    = "recent_experience"
	FeatureSkillRarityScore    = "skill_rarity_score"
	FeatureTitleSimilarity     = "title_similarity"
	FeatureFreshnessScore      = "freshness_score"
	FeatureCompletenessScore   = "completeness_score"
)

// FeatureNames returns the canonical feature name list in vector order.
// The returned slice is a fresh copy on every call.
func FeatureNames() []string {
	return []string{
		FeatureOverallMatchScore,
		FeatureKeywordScore,
		FeatureTFIDFScore,
		FeatureVectorScore,
		FeatureSkillsMatchRatio,
		FeatureExperienceMonths,
		FeatureExperienceRelevance,
		FeatureEducationLevel,
		FeatureRecentExperience,
		FeatureSkillRarityScore,
		FeatureTitleSimilarity,
		FeatureFreshnessScore,
		FeatureCompletenessScore,
	}
}

// RankingFeatures is the named numeric feature vector for one
// (resume, vacancy) pair. Keys are the Feature* constants.
type RankingFeatures map[string]float64

// CandidateRank is a single prediction output. It is never mutated after
// creation; a rescore produces a new CandidateRank that supersedes it.
type CandidateRank struct {
	ResumeID        uuid.UUID          `json:"resume_id"`
	VacancyID       uuid.UUID          `json:"vacancy_id"`
	RankScore       float64            `json:"rank_score"`  // 0-100
	Confidence      float64            `json:"confidence"`  // 0-1
	Recommendation  string             `json:"recommendation"` // excellent/good/fair/poor
	Contributions   map[string]float64 `json:"contributions,omitempty"` // per-feature share of the score
	ExperimentGroup string             `json:"experiment_group,omitempty"`
	ModelVersion    int                `json:"model_version"`
	PredictedAt     time.Time          `json:"predicted_at,omitempty"`
}

// RankingFeedback is a recruiter correction to a CandidateRank. Feedback is
// append-only training signal and is never deleted.
type RankingFeedback struct {
	ID             uuid.UUID  `json:"id,omitempty"`
	ResumeID       uuid.UUID  `json:"resume_id" validate:"required"`
	VacancyID      uuid.UUID  `json:"vacancy_id" validate:"required"`
	WasHelpful     bool       `json:"was_helpful"`
	ActualOutcome  string     `json:"actual_outcome,omitempty"` // hiring stage reached
	CorrectedScore *float64   `json:"corrected_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Comment        string     `json:"comment,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

// Validate validates the RankingFeedback using the validator.
func (f *RankingFeedback) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// Hiring stages, used to derive training labels from feedback history.
const (
	StageApplied     = "APPLIED"
	StageScreened    = "SCREENED"
	StageInterviewed = "INTERVIEWED"
	StageOffered     = "OFFERED"
	StageHired       = "HIRED"
	StageRejected    = "REJECTED"
)

// StageLabel maps a hiring stage to a training label in [0,1].
// Terminal stages are exact; intermediate stages get fractional credit for
// how far the candidate progressed. Unknown stages map to 0.
func StageLabel(stage string) float64 {
	switch stage {
	case StageHired:
		return 1.0
	case StageOffered:
		return 0.9
	case StageInterviewed:
		return 0.6
	case StageScreened:
		return 0.3
	case StageApplied:
		return 0.1
	case StageRejected:
		return 0.0
	default:
		return 0.0
	}
}

// LabeledExample pairs a feature vector with a training outcome in [0,1].
type LabeledExample struct {
	Features RankingFeatures `json:"features"`
	Outcome  float64         `json:"outcome"`
}
