package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightProfile_Validate(t *testing.T) {
	good := WeightProfile{Name: "ok", KeywordWeight: 0.5, TFIDFWeight: 0.3, VectorWeight: 0.2}
	assert.NoError(t, good.Validate())

	// A non-unit sum is not a validation error.
	drifted := WeightProfile{Name: "drifted", KeywordWeight: 0.9, TFIDFWeight: 0.9, VectorWeight: 0.9}
	assert.NoError(t, drifted.Validate())

	negative := WeightProfile{Name: "bad", KeywordWeight: -0.1, TFIDFWeight: 0.6, VectorWeight: 0.5}
	assert.Error(t, negative.Validate())
}

func TestWeightProfile_WeightSum(t *testing.T) {
	p := WeightProfile{KeywordWeight: 0.5, TFIDFWeight: 0.3, VectorWeight: 0.2}
	assert.InDelta(t, 1.0, p.WeightSum(), 1e-9)
}

func TestMatchResult_SkillsMatchRatio(t *testing.T) {
	m := MatchResult{
		MatchedSkills: []string{"Go", "Python"},
		MissingSkills: []string{"Rust"},
	}
	assert.InDelta(t, 2.0/3.0, m.SkillsMatchRatio(), 1e-9)

	assert.Zero(t, (&MatchResult{}).SkillsMatchRatio())
}

func TestResume_ExperienceMonths(t *testing.T) {
	r := Resume{
		Experience: []ExperienceEntry{
			{Months: 24, IsRelevant: true},
			{Months: 12, IsRelevant: false},
			{Months: 6, IsRelevant: true},
		},
	}
	assert.Equal(t, 42, r.TotalExperienceMonths())
	assert.Equal(t, 30, r.RelevantExperienceMonths())

	empty := Resume{}
	assert.Zero(t, empty.TotalExperienceMonths())
	assert.Zero(t, empty.RelevantExperienceMonths())
}

func TestFeatureNames_ReturnsFreshCopy(t *testing.T) {
	first := FeatureNames()
	first[0] = "mutated"
	assert.Equal(t, FeatureOverallMatchScore, FeatureNames()[0])
}

func TestFeatureNames_MatchConstants(t *testing.T) {
	names := FeatureNames()
	require.Len(t, names, 13)

	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "duplicate feature name %s", name)
		seen[name] = true
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		stage string
		want  float64
	}{
		{StageHired, 1.0},
		{StageOffered, 0.9},
		{StageInterviewed, 0.6},
		{StageScreened, 0.3},
		{StageApplied, 0.1},
		{StageRejected, 0.0},
		{"UNKNOWN", 0.0},
		{"", 0.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, StageLabel(tt.stage), 1e-9, tt.stage)
	}
}
