package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func TestScore_TechnicalProfile(t *testing.T) {
	profile, ok := Preset(ProfileTechnical)
	require.True(t, ok)

	got, err := Score(0.8, 0.6, 0.4, profile)
	require.NoError(t, err)
	// 0.6*0.8 + 0.25*0.6 + 0.15*0.4
	assert.InDelta(t, 0.69, got, 1e-9)
}

func TestScore_ClampsInputs(t *testing.T) {
	profile := FallbackProfile()

	got, err := Score(1.5, -0.3, 0.5, profile)
	require.NoError(t, err)
	// keyword clamps to 1, tfidf clamps to 0
	assert.InDelta(t, 0.5*1.0+0.3*0.0+0.2*0.5, got, 1e-9)
}

func TestScore_NonUnitSumUsedAsGiven(t *testing.T) {
	profile := types.WeightProfile{Name: "Heavy", KeywordWeight: 1.0, TFIDFWeight: 1.0, VectorWeight: 1.0}

	got, err := Score(0.5, 0.5, 0.5, profile)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-9)
}

func TestScore_NegativeWeightRejected(t *testing.T) {
	profile := types.WeightProfile{Name: "Bad", KeywordWeight: -0.1, TFIDFWeight: 0.6, VectorWeight: 0.5}

	_, err := Score(0.5, 0.5, 0.5, profile)
	assert.Error(t, err)
}

func TestScore_AllZeroSignals(t *testing.T) {
	got, err := Score(0, 0, 0, FallbackProfile())
	require.NoError(t, err)
	assert.Zero(t, got)
}

// fakeProfileRepo serves canned vacancy and org overrides.
type fakeProfileRepo struct {
	vacancy map[uuid.UUID]*types.WeightProfile
	org     map[uuid.UUID]*types.WeightProfile
	err     error
}

func (f *fakeProfileRepo) VacancyProfile(_ context.Context, id uuid.UUID) (*types.WeightProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vacancy[id], nil
}

func (f *fakeProfileRepo) OrganizationDefault(_ context.Context, id uuid.UUID) (*types.WeightProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.org[id], nil
}

func TestResolveActiveProfile_VacancyWins(t *testing.T) {
	vacancyID := uuid.New()
	orgID := uuid.New()
	repo := &fakeProfileRepo{
		vacancy: map[uuid.UUID]*types.WeightProfile{
			vacancyID: {Name: "VacancyOverride", KeywordWeight: 0.7, TFIDFWeight: 0.2, VectorWeight: 0.1},
		},
		org: map[uuid.UUID]*types.WeightProfile{
			orgID: {Name: "OrgDefault", KeywordWeight: 0.4, TFIDFWeight: 0.4, VectorWeight: 0.2},
		},
	}

	s := NewScorer(repo, ProfileBalanced, nil)
	got := s.ResolveActiveProfile(context.Background(), vacancyID, orgID)
	assert.Equal(t, "VacancyOverride", got.Name)
}

func TestResolveActiveProfile_OrgDefaultWhenNoVacancyOverride(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeProfileRepo{
		org: map[uuid.UUID]*types.WeightProfile{
			orgID: {Name: "OrgDefault", KeywordWeight: 0.4, TFIDFWeight: 0.4, VectorWeight: 0.2},
		},
	}

	s := NewScorer(repo, ProfileBalanced, nil)
	got := s.ResolveActiveProfile(context.Background(), uuid.New(), orgID)
	assert.Equal(t, "OrgDefault", got.Name)
}

func TestResolveActiveProfile_PresetWhenNoOverrides(t *testing.T) {
	s := NewScorer(&fakeProfileRepo{}, ProfileCreative, nil)
	got := s.ResolveActiveProfile(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, ProfileCreative, got.Name)
}

func TestResolveActiveProfile_FallbackOnUnknownPreset(t *testing.T) {
	s := NewScorer(nil, "NoSuchPreset", nil)
	got := s.ResolveActiveProfile(context.Background(), uuid.Nil, uuid.Nil)
	assert.Equal(t, FallbackProfile(), got)
}

func TestResolveActiveProfile_LookupErrorFallsThrough(t *testing.T) {
	repo := &fakeProfileRepo{err: errors.New("connection refused")}
	s := NewScorer(repo, ProfileBalanced, nil)

	got := s.ResolveActiveProfile(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, ProfileBalanced, got.Name)
}

func TestBuildMatchResult(t *testing.T) {
	resume := &types.Resume{
		ID:     uuid.New(),
		Skills: []string{"ReactJS", "Python"},
	}
	vacancy := &types.Vacancy{
		ID:             uuid.New(),
		RequiredSkills: []string{"React", "Go"},
	}
	merged := types.MergedTaxonomy{
		"React": {"React", "ReactJS"},
	}

	s := NewScorer(nil, ProfileTechnical, nil)
	result, err := s.BuildMatchResult(context.Background(), resume, vacancy, merged, 0.8, 0.6, 0.4)
	require.NoError(t, err)

	assert.Equal(t, resume.ID, result.ResumeID)
	assert.Equal(t, vacancy.ID, result.VacancyID)
	assert.InDelta(t, 0.69, result.UnifiedScore, 1e-9)
	assert.Equal(t, []string{"ReactJS"}, result.MatchedSkills)
	assert.Equal(t, []string{"Go"}, result.MissingSkills)
	assert.Equal(t, ProfileTechnical, result.ProfileName)
	assert.False(t, result.ComputedAt.IsZero())
}

func TestPresetNames_AllResolvable(t *testing.T) {
	for _, name := range PresetNames() {
		p, ok := Preset(name)
		require.True(t, ok, name)
		assert.InDelta(t, 1.0, p.WeightSum(), sumTolerance)
	}
}
