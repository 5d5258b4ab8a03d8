package scoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/matching"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Scorer resolves the active weight profile and combines raw match signals.
type Scorer struct {
	profiles   ProfileRepository
	presetName string
	log        *zap.Logger
}

// NewScorer builds a scorer. A nil repository means presets and the fallback
// are the only resolution sources. presetName selects which named preset to
// use when no override exists; an unknown name falls through to the
// hard-coded fallback.
func NewScorer(profiles ProfileRepository, presetName string, log *zap.Logger) *Scorer {
	return &Scorer{profiles: profiles, presetName: presetName, log: logger.OrNop(log)}
}

// Score combines the three raw signals under the profile. Each input is
// clamped to [0,1] first; the weights are applied exactly as given, with no
// renormalization, even when they do not sum to 1.0. A negative weight is
// invalid configuration and surfaces as an error.
func Score(keywordScore, tfidfScore, vectorScore float64, profile types.WeightProfile) (float64, error) {
	if err := profile.Validate(); err != nil {
		return 0, err
	}
	return profile.KeywordWeight*clamp01(keywordScore) +
		profile.TFIDFWeight*clamp01(tfidfScore) +
		profile.VectorWeight*clamp01(vectorScore), nil
}

// ResolveActiveProfile picks the profile for a scoring call. Precedence:
// vacancy-bound override, then organization default, then the configured
// named preset, then the hard-coded fallback. A resolved profile whose
// weights do not sum to 1.0 is used as-is but logged as a warning.
func (s *Scorer) ResolveActiveProfile(ctx context.Context, vacancyID, orgID uuid.UUID) types.WeightProfile {
	profile := s.resolve(ctx, vacancyID, orgID)
	if sumIsOff(profile) {
		s.log.Warn("weight profile does not sum to 1.0; using weights as-given",
			zap.String("profile", profile.Name),
			zap.Float64("sum", profile.WeightSum()))
	}
	return profile
}

func (s *Scorer) resolve(ctx context.Context, vacancyID, orgID uuid.UUID) types.WeightProfile {
	if s.profiles != nil {
		if vacancyID != uuid.Nil {
			p, err := s.profiles.VacancyProfile(ctx, vacancyID)
			if err != nil {
				s.log.Warn("vacancy profile lookup failed", zap.Error(err))
			} else if p != nil {
				return *p
			}
		}
		if orgID != uuid.Nil {
			p, err := s.profiles.OrganizationDefault(ctx, orgID)
			if err != nil {
				s.log.Warn("organization profile lookup failed", zap.Error(err))
			} else if p != nil {
				return *p
			}
		}
	}
	if p, ok := Preset(s.presetName); ok {
		return p
	}
	return FallbackProfile()
}

// BuildMatchResult assembles the full per-pair MatchResult: the skill
// breakdown from the matcher plus the unified score under the active
// profile.
func (s *Scorer) BuildMatchResult(
	ctx context.Context,
	resume *types.Resume,
	vacancy *types.Vacancy,
	merged types.MergedTaxonomy,
	keywordScore, tfidfScore, vectorScore float64,
) (*types.MatchResult, error) {
	profile := s.ResolveActiveProfile(ctx, vacancy.ID, vacancy.OrganizationID)

	unified, err := Score(keywordScore, tfidfScore, vectorScore, profile)
	if err != nil {
		return nil, err
	}

	breakdown := matching.BreakdownSkills(resume.Skills, vacancy.RequiredSkills, merged)

	return &types.MatchResult{
		ResumeID:      resume.ID,
		VacancyID:     vacancy.ID,
		KeywordScore:  clamp01(keywordScore),
		TFIDFScore:    clamp01(tfidfScore),
		VectorScore:   clamp01(vectorScore),
		UnifiedScore:  unified,
		MatchedSkills: breakdown.Matched,
		MissingSkills: breakdown.Missing,
		ProfileName:   profile.Name,
		ComputedAt:    time.Now().UTC(),
	}, nil
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
