package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func validFeedback() types.RankingFeedback {
	return types.RankingFeedback{
		ResumeID:  uuid.New(),
		VacancyID: uuid.New(),
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestLabel_Precedence(t *testing.T) {
	tests := []struct {
		name string
		fb   types.RankingFeedback
		want float64
	}{
		{
			"corrected score wins over stage and flag",
			types.RankingFeedback{CorrectedScore: floatPtr(85), ActualOutcome: types.StageRejected, WasHelpful: false},
			0.85,
		},
		{
			"stage wins over flag",
			types.RankingFeedback{ActualOutcome: types.StageInterviewed, WasHelpful: false},
			0.6,
		},
		{
			"helpful flag alone",
			types.RankingFeedback{WasHelpful: true},
			1.0,
		},
		{
			"unhelpful flag alone",
			types.RankingFeedback{WasHelpful: false},
			0.0,
		},
		{
			"corrected score of zero is still explicit",
			types.RankingFeedback{CorrectedScore: floatPtr(0), ActualOutcome: types.StageHired},
			0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Label(tt.fb), 1e-9)
		})
	}
}

func TestLabel_StageOutcomes(t *testing.T) {
	stages := map[string]float64{
		types.StageHired:       1.0,
		types.StageOffered:     0.9,
		types.StageInterviewed: 0.6,
		types.StageScreened:    0.3,
		types.StageApplied:     0.1,
		types.StageRejected:    0.0,
	}
	for stage, want := range stages {
		got := Label(types.RankingFeedback{ActualOutcome: stage, WasHelpful: true})
		assert.InDelta(t, want, got, 1e-9, stage)
	}
}

func TestRepository_AppendValidatesAndStamps(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	require.NoError(t, repo.Append(ctx, validFeedback()))

	entries, err := repo.ListSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotZero(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRepository_AppendRejectsInvalid(t *testing.T) {
	repo := NewInMemoryRepository()

	// Missing resume and vacancy IDs fail validation.
	assert.Error(t, repo.Append(context.Background(), types.RankingFeedback{}))

	// Corrected score outside 0-100 fails validation.
	fb := validFeedback()
	fb.CorrectedScore = floatPtr(150)
	assert.Error(t, repo.Append(context.Background(), fb))
}

func TestRepository_CountSinceCutoff(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	old := validFeedback()
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Append(ctx, old))
	require.NoError(t, repo.Append(ctx, validFeedback()))
	require.NoError(t, repo.Append(ctx, validFeedback()))

	recent, err := repo.CountSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, recent)

	all, err := repo.CountSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, all)
}

func TestBuildTrainingSet_JoinsOnPair(t *testing.T) {
	resumeID := uuid.New()
	vacancyID := uuid.New()
	orphanResume := uuid.New()

	entries := []types.RankingFeedback{
		{ResumeID: resumeID, VacancyID: vacancyID, ActualOutcome: types.StageHired},
		{ResumeID: orphanResume, VacancyID: vacancyID, WasHelpful: true}, // no snapshot
	}
	featuresByPair := map[PairKey]types.RankingFeatures{
		{ResumeID: resumeID, VacancyID: vacancyID}: {
			types.FeatureOverallMatchScore: 0.9,
		},
	}

	examples := BuildTrainingSet(entries, featuresByPair)
	require.Len(t, examples, 1)
	assert.Equal(t, 1.0, examples[0].Outcome)
	assert.InDelta(t, 0.9, examples[0].Features[types.FeatureOverallMatchScore], 1e-9)
}
