package model

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Artifact is the explicit persisted form of one trained model version:
// the feature-name contract, learned coefficients, and training metadata.
// Artifacts are append-only; retraining writes a new version and never
// overwrites an old one.
type Artifact struct {
	ModelName    string             `json:"model_name"`
	Version      int                `json:"version"`
	FeatureNames []string           `json:"feature_names"`
	Weights      map[string]float64 `json:"weights"`
	Bias         float64            `json:"bias"`
	TrainedAt    time.Time          `json:"trained_at"`
	ExampleCount int                `json:"example_count"`
	Metrics      types.Metrics      `json:"metrics,omitempty"`
}

// checkContract verifies the artifact carries exactly the current feature
// name set.
func (a *Artifact) checkContract() error {
	want := map[string]bool{}
	for _, name := range types.FeatureNames() {
		want[name] = true
	}

	var unexpected []string
	have := map[string]bool{}
	for _, name := range a.FeatureNames {
		have[name] = true
		if !want[name] {
			unexpected = append(unexpected, name)
		}
	}

	var missing []string
	for name := range want {
		if !have[name] {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	return &FeatureContractError{Missing: missing, Unexpected: unexpected}
}

// ArtifactStore persists model artifacts by (model name, version).
type ArtifactStore interface {
	// SaveArtifact stores one version. Versions are never overwritten.
	SaveArtifact(ctx context.Context, artifact *Artifact) error
	// LoadArtifact fetches one version, or ErrModelVersionNotFound.
	LoadArtifact(ctx context.Context, modelName string, version int) (*Artifact, error)
	// LatestVersion returns the highest stored version, 0 when none exist.
	LatestVersion(ctx context.Context, modelName string) (int, error)
}

// InMemoryArtifactStore keeps artifacts in a process-local map. It is the
// store used by tests and the non-database mode.
type InMemoryArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[int]*Artifact
}

// NewInMemoryArtifactStore returns an empty store.
func NewInMemoryArtifactStore() *InMemoryArtifactStore {
	return &InMemoryArtifactStore{artifacts: make(map[string]map[int]*Artifact)}
}

// SaveArtifact stores the artifact under its model name and version.
func (s *InMemoryArtifactStore) SaveArtifact(_ context.Context, artifact *Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifacts[artifact.ModelName] == nil {
		s.artifacts[artifact.ModelName] = make(map[int]*Artifact)
	}
	copied := *artifact
	s.artifacts[artifact.ModelName][artifact.Version] = &copied
	return nil
}

// LoadArtifact fetches one stored version.
func (s *InMemoryArtifactStore) LoadArtifact(_ context.Context, modelName string, version int) (*Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.artifacts[modelName][version]
	if !ok {
		return nil, ErrModelVersionNotFound
	}
	copied := *artifact
	return &copied, nil
}

// LatestVersion returns the highest stored version for the model.
func (s *InMemoryArtifactStore) LatestVersion(_ context.Context, modelName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := 0
	for version := range s.artifacts[modelName] {
		if version > latest {
			latest = version
		}
	}
	return latest, nil
}
