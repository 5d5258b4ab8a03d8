// Package feedback accumulates recruiter corrections to rank predictions
// and turns them into training labels.
package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Repository stores ranking feedback. Feedback is append-only training
// signal: records are never updated or deleted.
type Repository interface {
	// Append records one feedback entry.
	Append(ctx context.Context, fb types.RankingFeedback) error
	// ListSince returns feedback recorded at or after the cutoff, oldest first.
	ListSince(ctx context.Context, cutoff time.Time) ([]types.RankingFeedback, error)
	// CountSince returns how many entries were recorded at or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
}

// InMemoryRepository keeps feedback in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []types.RankingFeedback
}

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Append records one feedback entry after validation.
func (r *InMemoryRepository) Append(_ context.Context, fb types.RankingFeedback) error {
	if err := fb.Validate(); err != nil {
		return err
	}
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, fb)
	return nil
}

// ListSince returns feedback recorded at or after the cutoff, oldest first.
func (r *InMemoryRepository) ListSince(_ context.Context, cutoff time.Time) ([]types.RankingFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.RankingFeedback, 0)
	for _, fb := range r.entries {
		if !fb.CreatedAt.Before(cutoff) {
			out = append(out, fb)
		}
	}
	return out, nil
}

// CountSince returns how many entries were recorded at or after the cutoff.
func (r *InMemoryRepository) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := r.ListSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Label derives the training outcome in [0,1] for one feedback entry.
// Precedence: an explicit corrected score (scaled from 0-100), then the
// hiring-stage outcome, then the bare was-helpful flag.
func Label(fb types.RankingFeedback) float64 {
	if fb.CorrectedScore != nil {
		return clamp01(*fb.CorrectedScore / 100.0)
	}
	if fb.ActualOutcome != "" {
		return types.StageLabel(fb.ActualOutcome)
	}
	if fb.WasHelpful {
		return 1.0
	}
	return 0.0
}

// PairKey identifies the (resume, vacancy) pair a feedback entry refers to.
type PairKey struct {
	ResumeID  uuid.UUID
	VacancyID uuid.UUID
}

// BuildTrainingSet joins feedback entries with the feature vectors that were
// current at prediction time. Entries with no feature snapshot are skipped:
// a label without features cannot train anything.
func BuildTrainingSet(entries []types.RankingFeedback, featuresByPair map[PairKey]types.RankingFeatures) []types.LabeledExample {
	examples := make([]types.LabeledExample, 0, len(entries))
	for _, fb := range entries {
		features, ok := featuresByPair[PairKey{ResumeID: fb.ResumeID, VacancyID: fb.VacancyID}]
		if !ok {
			continue
		}
		examples = append(examples, types.LabeledExample{
			Features: features,
			Outcome:  Label(fb),
		})
	}
	return examples
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
