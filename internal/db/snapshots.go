package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Performance Snapshot Methods (implements monitoring.SnapshotRepository)
// -----------------------------------------------------------------------------

// AppendSnapshot records one performance snapshot. Snapshots are append-only.
func (db *DB) AppendSnapshot(ctx context.Context, snapshot types.PerformanceSnapshot) error {
	metricsJSON, err := json.Marshal(snapshot.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot metrics: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO performance_snapshots (model_name, model_version, dataset_type, metrics, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		snapshot.ModelName, snapshot.ModelVersion, snapshot.DatasetType, metricsJSON, snapshot.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append performance snapshot: %w", err)
	}
	return nil
}

// RecentSnapshots returns up to limit snapshots for the series, newest first
// by recorded timestamp. Baselines must order by recorded_at, never by
// insertion order.
func (db *DB) RecentSnapshots(ctx context.Context, modelName, datasetType string, limit int) ([]types.PerformanceSnapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, model_name, model_version, dataset_type, metrics, recorded_at
		 FROM performance_snapshots
		 WHERE model_name = $1 AND dataset_type = $2
		 ORDER BY recorded_at DESC
		 LIMIT $3`,
		modelName, datasetType, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.PerformanceSnapshot
	for rows.Next() {
		var s types.PerformanceSnapshot
		var metricsJSON []byte
		if err := rows.Scan(&s.ID, &s.ModelName, &s.ModelVersion, &s.DatasetType, &metricsJSON, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan performance snapshot: %w", err)
		}
		if err := json.Unmarshal(metricsJSON, &s.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot metrics: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read performance snapshots: %w", err)
	}
	return snapshots, nil
}
