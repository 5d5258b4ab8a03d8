package model

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Recommendation bands. Each boundary is inclusive on its lower bound.
const (
	RecommendationExcellent = "excellent"
	RecommendationGood      = "good"
	RecommendationFair      = "fair"
	RecommendationPoor      = "poor"
)

// Training hyperparameters for the logistic model. Deterministic: no random
// initialization, fixed epoch count.
const (
	learningRate = 0.1
	trainEpochs  = 300
)

// Model is a trainable logistic model over the named feature vector. It
// moves through the states untrained -> trained(1) -> trained(2) -> ...;
// each Train produces the next version and keeps prior artifacts intact.
//
// Prediction holds only a read lock, so concurrent Predict calls never block
// each other; Train is the single writer.
type Model struct {
	mu      sync.RWMutex
	name    string
	version int
	weights map[string]float64
	bias    float64
	store   ArtifactStore
}

// New builds an untrained model backed by the given artifact store. A nil
// store gets an in-memory one.
func New(name string, store ArtifactStore) *Model {
	if store == nil {
		store = NewInMemoryArtifactStore()
	}
	return &Model{name: name, store: store}
}

// Name returns the model name used for artifact and snapshot keys.
func (m *Model) Name() string { return m.name }

// Version returns the current trained version, 0 while untrained.
func (m *Model) Version() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// IsTrained reports whether Predict is available.
func (m *Model) IsTrained() bool {
	return m.Version() > 0
}

// Predict maps a feature vector to a rank score in [0,100] and a confidence
// in [0,1]. Returns ErrModelNotTrained while untrained; callers then fall
// back to overall_match_score scaled to 0-100.
func (m *Model) Predict(features types.RankingFeatures) (score float64, confidence float64, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.version == 0 {
		return 0, 0, ErrModelNotTrained
	}

	p := m.probability(features)
	// Confidence grows with the distance from the decision boundary.
	return p * 100, math.Abs(2*p - 1), nil
}

// probability computes the sigmoid activation. Caller holds the lock.
func (m *Model) probability(features types.RankingFeatures) float64 {
	z := m.bias
	for name, weight := range m.weights {
		z += weight * features[name]
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// Contributions reports each feature's share of the prediction: the signed
// weight-times-value terms normalized by their absolute sum. Returns
// ErrModelNotTrained while untrained.
func (m *Model) Contributions(features types.RankingFeatures) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.version == 0 {
		return nil, ErrModelNotTrained
	}

	terms := make(map[string]float64, len(m.weights))
	totalAbs := 0.0
	for name, weight := range m.weights {
		term := weight * features[name]
		terms[name] = term
		totalAbs += math.Abs(term)
	}
	if totalAbs == 0 {
		return terms, nil
	}
	for name := range terms {
		terms[name] /= totalAbs
	}
	return terms, nil
}

// RankCandidates sorts feature vectors descending by predicted score. The
// sort is stable: ties keep the original input order. Indexes in the result
// refer back to the input slice.
func (m *Model) RankCandidates(candidates []types.RankingFeatures) ([]RankedCandidate, error) {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for i, features := range candidates {
		score, confidence, err := m.Predict(features)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedCandidate{
			Index:      i,
			Score:      score,
			Confidence: confidence,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// RankedCandidate is one entry of a RankCandidates result.
type RankedCandidate struct {
	Index      int     `json:"index"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// ClassifyRecommendation maps a rank score to its recommendation band:
// excellent >=80, good >=60, fair >=40, poor below.
func ClassifyRecommendation(score float64) string {
	switch {
	case score >= 80:
		return RecommendationExcellent
	case score >= 60:
		return RecommendationGood
	case score >= 40:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}

// Train fits the model on labeled examples and transitions it to the next
// version, persisting the new artifact. The previous version's artifact is
// left untouched for later comparison. Training runs to completion once
// started; cancellation is only honored before the fit begins.
func (m *Model) Train(ctx context.Context, examples []types.LabeledExample) (*Artifact, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := types.FeatureNames()
	weights := make(map[string]float64, len(names))
	bias := 0.0

	// Batch gradient descent on logistic loss. Deterministic across runs
	// for identical inputs: zero init, fixed iteration order via names.
	n := float64(len(examples))
	for epoch := 0; epoch < trainEpochs; epoch++ {
		gradB := 0.0
		grad := make(map[string]float64, len(names))
		for _, ex := range examples {
			z := bias
			for _, name := range names {
				z += weights[name] * ex.Features[name]
			}
			p := 1.0 / (1.0 + math.Exp(-z))
			residual := p - ex.Outcome
			gradB += residual
			for _, name := range names {
				grad[name] += residual * ex.Features[name]
			}
		}
		bias -= learningRate * gradB / n
		for _, name := range names {
			weights[name] -= learningRate * grad[name] / n
		}
	}

	artifact := &Artifact{
		ModelName:    m.name,
		Version:      m.Version() + 1,
		FeatureNames: names,
		Weights:      weights,
		Bias:         bias,
		TrainedAt:    time.Now().UTC(),
		ExampleCount: len(examples),
	}

	// Persist first: a failed save must leave the in-memory model at its
	// previous version, not half-transitioned.
	if err := m.store.SaveArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("failed to persist model artifact v%d: %w", artifact.Version, err)
	}

	m.mu.Lock()
	m.weights = weights
	m.bias = bias
	m.version = artifact.Version
	m.mu.Unlock()
	return artifact, nil
}

// FeatureImportance returns each feature's relative weight: absolute
// coefficient shares summing to 1. Returns ErrModelNotTrained while
// untrained.
func (m *Model) FeatureImportance() (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.version == 0 {
		return nil, ErrModelNotTrained
	}

	totalAbs := 0.0
	for _, w := range m.weights {
		totalAbs += math.Abs(w)
	}

	importance := make(map[string]float64, len(m.weights))
	for name, w := range m.weights {
		if totalAbs == 0 {
			importance[name] = 0
			continue
		}
		importance[name] = math.Abs(w) / totalAbs
	}
	return importance, nil
}

// Load restores the model state from a stored artifact version. The feature
// contract is checked here, so a stale artifact fails at load time rather
// than at prediction time.
func (m *Model) Load(ctx context.Context, version int) error {
	artifact, err := m.store.LoadArtifact(ctx, m.name, version)
	if err != nil {
		return err
	}
	if err := artifact.checkContract(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.weights = artifact.Weights
	m.bias = artifact.Bias
	m.version = artifact.Version
	return nil
}

// LoadLatest restores the newest stored version, or ErrModelVersionNotFound
// when none exist.
func (m *Model) LoadLatest(ctx context.Context) error {
	latest, err := m.store.LatestVersion(ctx, m.name)
	if err != nil {
		return err
	}
	if latest == 0 {
		return ErrModelVersionNotFound
	}
	return m.Load(ctx, latest)
}
