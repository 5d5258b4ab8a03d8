// Package monitoring tracks model performance snapshots over time, computes
// rolling baselines, and reports degradation that should trigger retraining.
package monitoring

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// DefaultBaselineWindow is how many recent snapshots the rolling baseline
// averages over.
const DefaultBaselineWindow = 5

// DefaultDegradationThreshold is the metric drop that counts as degradation.
const DefaultDegradationThreshold = 0.05

// comparedMetrics are the metrics aggregated by degradation detection.
var comparedMetrics = []string{
	types.MetricAccuracy,
	types.MetricPrecision,
	types.MetricRecall,
	types.MetricF1,
}

// SnapshotRepository stores performance snapshots. Writes are append-only;
// ordering within a (model, dataset) series is by the snapshot's recorded
// timestamp, not insertion order.
type SnapshotRepository interface {
	// AppendSnapshot records one snapshot.
	AppendSnapshot(ctx context.Context, snapshot types.PerformanceSnapshot) error
	// RecentSnapshots returns up to limit snapshots for the series, newest
	// first by recorded timestamp.
	RecentSnapshots(ctx context.Context, modelName, datasetType string, limit int) ([]types.PerformanceSnapshot, error)
}

// InMemorySnapshotRepository keeps snapshots in process memory.
type InMemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []types.PerformanceSnapshot
}

// NewInMemorySnapshotRepository returns an empty repository.
func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

// AppendSnapshot records one snapshot.
func (r *InMemorySnapshotRepository) AppendSnapshot(_ context.Context, snapshot types.PerformanceSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

// RecentSnapshots returns up to limit snapshots for the series, newest first
// by recorded timestamp.
func (r *InMemorySnapshotRepository) RecentSnapshots(_ context.Context, modelName, datasetType string, limit int) ([]types.PerformanceSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]types.PerformanceSnapshot, 0)
	for _, s := range r.snapshots {
		if s.ModelName == modelName && s.DatasetType == datasetType {
			matched = append(matched, s)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].RecordedAt.After(matched[j].RecordedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Monitor aggregates snapshot history and answers retraining questions.
type Monitor struct {
	repo   SnapshotRepository
	window int
}

// NewMonitor builds a monitor over the repository. window <= 0 uses the
// default rolling window.
func NewMonitor(repo SnapshotRepository, window int) *Monitor {
	if repo == nil {
		repo = NewInMemorySnapshotRepository()
	}
	if window <= 0 {
		window = DefaultBaselineWindow
	}
	return &Monitor{repo: repo, window: window}
}

// RecordSnapshot appends one performance snapshot. A zero RecordedAt is
// stamped with the current time.
func (m *Monitor) RecordSnapshot(ctx context.Context, snapshot types.PerformanceSnapshot) error {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	if snapshot.RecordedAt.IsZero() {
		snapshot.RecordedAt = time.Now().UTC()
	}
	return m.repo.AppendSnapshot(ctx, snapshot)
}

// ComputeBaseline averages each metric over the rolling window of recent
// snapshots for the (model, dataset) series. Metrics missing from a
// snapshot are simply left out of that snapshot's contribution. An empty
// history yields an empty baseline.
func (m *Monitor) ComputeBaseline(ctx context.Context, modelName, datasetType string) (types.Metrics, error) {
	recent, err := m.repo.RecentSnapshots(ctx, modelName, datasetType, m.window)
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range recent {
		for name, value := range s.Metrics {
			sums[name] += value
			counts[name]++
		}
	}

	baseline := types.Metrics{}
	for name, sum := range sums {
		baseline[name] = sum / float64(counts[name])
	}
	return baseline, nil
}

// DetectDegradation compares current metrics against a baseline. A metric
// is degraded iff baseline - current > threshold: only drops flag, never
// improvements or stability. A metric absent from either side is skipped.
// threshold <= 0 uses the default. Detection never fails.
func DetectDegradation(current, baseline types.Metrics, threshold float64) types.DegradationReport {
	if threshold <= 0 {
		threshold = DefaultDegradationThreshold
	}

	report := types.DegradationReport{
		Deltas:          map[string]float64{},
		DegradedMetrics: []string{},
		Threshold:       threshold,
	}

	for _, name := range comparedMetrics {
		cur, haveCur := current[name]
		base, haveBase := baseline[name]
		if !haveCur || !haveBase {
			continue
		}
		report.Deltas[name] = cur - base
		if base-cur > threshold {
			report.DegradedMetrics = append(report.DegradedMetrics, name)
		}
	}

	report.IsDegraded = len(report.DegradedMetrics) > 0
	return report
}

// ShouldRetrain gates retraining on both conditions at once: enough new
// labeled examples have accumulated AND the cooldown since the last training
// has elapsed. Requiring both prevents thrash retraining on small feedback
// bursts.
func ShouldRetrain(newExampleCount, thresholdCount int, lastTrainedAt time.Time, cooldown time.Duration) bool {
	if newExampleCount < thresholdCount {
		return false
	}
	if lastTrainedAt.IsZero() {
		return true // never trained: only the example count gates
	}
	return time.Since(lastTrainedAt) >= cooldown
}
