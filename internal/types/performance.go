package types

import (
	"time"

	"github.com/google/uuid"
)

// Metric names tracked for degradation detection.
const (
	MetricAccuracy  = "accuracy"
	MetricPrecision = "precision"
	MetricRecall    = "recall"
	MetricF1        = "f1_score"
	MetricAUC       = "auc"
)

// Dataset slices a snapshot can be computed against.
const (
	DatasetTraining   = "training"
	DatasetValidation = "validation"
	DatasetTest       = "test"
	DatasetProduction = "production"
)

// Metrics is a named metric map (accuracy, precision, recall, f1_score, auc).
// A missing key means the metric was not computed for that snapshot.
type Metrics map[string]float64

// PerformanceSnapshot records model quality against one dataset slice at a
// point in time. Snapshots are append-only; baselines average recent ones.
type PerformanceSnapshot struct {
	ID           uuid.UUID `json:"id,omitempty"`
	ModelName    string    `json:"model_name"`
	ModelVersion int       `json:"model_version"`
	DatasetType  string    `json:"dataset_type"`
	Metrics      Metrics   `json:"metrics"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// DegradationReport is the result of comparing current metrics against a
// rolling baseline.
type DegradationReport struct {
	IsDegraded      bool               `json:"is_degraded"`
	Deltas          map[string]float64 `json:"deltas"` // current - baseline, per compared metric
	DegradedMetrics []string           `json:"degraded_metrics"`
	Threshold       float64            `json:"threshold"`
}
