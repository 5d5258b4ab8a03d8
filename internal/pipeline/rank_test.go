package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/model"
	"github.com/jonathan/candidate-ranker/internal/scoring"
	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

func testVacancy() *types.Vacancy {
	return &types.Vacancy{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Industry:       "tech",
		Title:          "Software Engineer",
		RequiredSkills: []string{"React", "Python"},
	}
}

func testCandidate(skills []string, keyword, tfidf, vector float64) Candidate {
	return Candidate{
		Resume: &types.Resume{
			ID:     uuid.New(),
			Title:  "Software Engineer",
			Skills: skills,
			Experience: []types.ExperienceEntry{
				{Title: "Engineer", Months: 36, IsRelevant: true},
			},
			HasContact: true,
		},
		KeywordScore: keyword,
		TFIDFScore:   tfidf,
		VectorScore:  vector,
	}
}

func testPipeline(rankModel *model.Model) *Pipeline {
	resolver := taxonomy.NewResolver(nil, nil)
	scorer := scoring.NewScorer(nil, scoring.ProfileTechnical, nil)
	return New(resolver, scorer, rankModel, nil, nil)
}

func TestRank_UntrainedModelFallsBackToMatchScore(t *testing.T) {
	p := testPipeline(model.New("test-model", nil))

	results, err := p.Rank(context.Background(), testVacancy(), []Candidate{
		testCandidate([]string{"Python"}, 0.8, 0.6, 0.4),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, r.UsedFallback)
	// Fallback rank score is the unified score scaled to 0-100.
	assert.InDelta(t, r.Match.UnifiedScore*100, r.Rank.RankScore, 1e-9)
	assert.InDelta(t, 69.0, r.Rank.RankScore, 1e-9)
	assert.Zero(t, r.Rank.Confidence)
	assert.Equal(t, model.RecommendationGood, r.Rank.Recommendation)
	assert.Zero(t, r.Rank.ModelVersion)
}

func TestRank_SortedDescending(t *testing.T) {
	p := testPipeline(model.New("test-model", nil))

	strong := testCandidate([]string{"React", "Python"}, 0.9, 0.9, 0.9)
	weak := testCandidate([]string{"Cooking"}, 0.1, 0.1, 0.1)
	middling := testCandidate([]string{"Python"}, 0.5, 0.5, 0.5)

	results, err := p.Rank(context.Background(), testVacancy(), []Candidate{
		weak, strong, middling,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, strong.Resume.ID, results[0].Rank.ResumeID)
	assert.Equal(t, middling.Resume.ID, results[1].Rank.ResumeID)
	assert.Equal(t, weak.Resume.ID, results[2].Rank.ResumeID)
	assert.GreaterOrEqual(t, results[0].Rank.RankScore, results[1].Rank.RankScore)
	assert.GreaterOrEqual(t, results[1].Rank.RankScore, results[2].Rank.RankScore)
}

func TestRank_TrainedModelAttachesContributions(t *testing.T) {
	rankModel := model.New("test-model", nil)
	examples := []types.LabeledExample{
		{Features: types.RankingFeatures{types.FeatureOverallMatchScore: 0.9}, Outcome: 1},
		{Features: types.RankingFeatures{types.FeatureOverallMatchScore: 0.1}, Outcome: 0},
	}
	_, err := rankModel.Train(context.Background(), examples)
	require.NoError(t, err)

	p := testPipeline(rankModel)
	results, err := p.Rank(context.Background(), testVacancy(), []Candidate{
		testCandidate([]string{"Python"}, 0.8, 0.6, 0.4),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.UsedFallback)
	assert.Equal(t, 1, r.Rank.ModelVersion)
	assert.NotEmpty(t, r.Rank.Contributions)
	assert.False(t, r.Rank.PredictedAt.IsZero())
}

func TestRank_TaxonomyDrivesSkillBreakdown(t *testing.T) {
	vacancy := testVacancy()
	repo := taxonomy.NewInMemoryRepository()
	repo.AddCustomEntry(vacancy.OrganizationID, types.TaxonomyEntry{
		SkillName: "React", Variants: []string{"ReactJS"}, IsActive: true,
	})

	resolver := taxonomy.NewResolver(repo, nil)
	scorer := scoring.NewScorer(nil, scoring.ProfileTechnical, nil)
	p := New(resolver, scorer, model.New("test-model", nil), nil, nil)

	results, err := p.Rank(context.Background(), vacancy, []Candidate{
		testCandidate([]string{"ReactJS", "Python"}, 0.8, 0.6, 0.4),
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"ReactJS", "Python"}, results[0].Match.MatchedSkills)
	assert.Empty(t, results[0].Match.MissingSkills)
}

func TestRank_ExperimentGroupAssigned(t *testing.T) {
	resolver := taxonomy.NewResolver(nil, nil)
	scorer := scoring.NewScorer(nil, scoring.ProfileTechnical, nil)
	exp := model.NewExperiment("rollout", "control", "treatment")
	p := New(resolver, scorer, model.New("test-model", nil), exp, nil)

	candidate := testCandidate([]string{"Python"}, 0.5, 0.5, 0.5)
	results, err := p.Rank(context.Background(), testVacancy(), []Candidate{candidate})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Contains(t, []string{"control", "treatment"}, results[0].Rank.ExperimentGroup)
	assert.Equal(t, exp.Assign(candidate.Resume.ID), results[0].Rank.ExperimentGroup)
}

func TestRank_ManyCandidates(t *testing.T) {
	p := testPipeline(model.New("test-model", nil))

	candidates := make([]Candidate, 50)
	for i := range candidates {
		candidates[i] = testCandidate([]string{"Python"}, float64(i)/50, 0.5, 0.5)
	}

	results, err := p.Rank(context.Background(), testVacancy(), candidates)
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Rank.RankScore, results[i].Rank.RankScore)
	}
}

func TestRank_InvalidProfileSurfacesError(t *testing.T) {
	bad := &types.WeightProfile{Name: "Bad", KeywordWeight: -1, TFIDFWeight: 0.5, VectorWeight: 0.5}
	scorer := scoring.NewScorer(stubProfileRepo{profile: bad}, scoring.ProfileTechnical, nil)
	p := New(taxonomy.NewResolver(nil, nil), scorer, model.New("test-model", nil), nil, nil)

	_, err := p.Rank(context.Background(), testVacancy(), []Candidate{
		testCandidate([]string{"Python"}, 0.5, 0.5, 0.5),
	})
	assert.Error(t, err)
}

type stubProfileRepo struct {
	profile *types.WeightProfile
}

func (s stubProfileRepo) VacancyProfile(context.Context, uuid.UUID) (*types.WeightProfile, error) {
	return s.profile, nil
}

func (s stubProfileRepo) OrganizationDefault(context.Context, uuid.UUID) (*types.WeightProfile, error) {
	return s.profile, nil
}
