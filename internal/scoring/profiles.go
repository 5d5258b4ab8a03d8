// Package scoring combines the keyword, TF-IDF, and vector match signals
// into one unified score under a weight profile.
package scoring

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Named preset profiles. Weights reflect how much each signal matters for
// the role family: technical roles lean on exact keyword hits, creative
// roles on semantic similarity.
const (
	ProfileTechnical = "Technical"
	ProfileCreative  = "Creative"
	ProfileExecutive = "Executive"
	ProfileBalanced  = "Balanced"
)

// sumTolerance is how far a profile's weight sum may drift from 1.0 before
// resolution logs a warning.
const sumTolerance = 0.01

var presets = map[string]types.WeightProfile{
	ProfileTechnical: {Name: ProfileTechnical, KeywordWeight: 0.6, TFIDFWeight: 0.25, VectorWeight: 0.15},
	ProfileCreative:  {Name: ProfileCreative, KeywordWeight: 0.3, TFIDFWeight: 0.3, VectorWeight: 0.4},
	ProfileExecutive: {Name: ProfileExecutive, KeywordWeight: 0.4, TFIDFWeight: 0.35, VectorWeight: 0.25},
	ProfileBalanced:  {Name: ProfileBalanced, KeywordWeight: 0.34, TFIDFWeight: 0.33, VectorWeight: 0.33},
}

// FallbackProfile is the hard-coded last resort when no preset or override
// applies.
func FallbackProfile() types.WeightProfile {
	return types.WeightProfile{Name: "Default", KeywordWeight: 0.5, TFIDFWeight: 0.3, VectorWeight: 0.2}
}

// Preset returns a named preset profile by exact name.
func Preset(name string) (types.WeightProfile, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists the available preset names.
func PresetNames() []string {
	return []string{ProfileTechnical, ProfileCreative, ProfileExecutive, ProfileBalanced}
}

// sumIsOff reports whether the profile weights drift from summing to 1.0.
func sumIsOff(p types.WeightProfile) bool {
	return math.Abs(p.WeightSum()-1.0) > sumTolerance
}

// ProfileRepository resolves persisted weight-profile overrides. The
// uniqueness invariants (one active profile per vacancy, one org profile per
// name) are the repository's to enforce on write.
type ProfileRepository interface {
	// VacancyProfile returns the profile bound to the vacancy, or nil.
	VacancyProfile(ctx context.Context, vacancyID uuid.UUID) (*types.WeightProfile, error)
	// OrganizationDefault returns the organization's default profile, or nil.
	OrganizationDefault(ctx context.Context, orgID uuid.UUID) (*types.WeightProfile, error)
}
