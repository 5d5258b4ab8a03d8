package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/model"
)

// -----------------------------------------------------------------------------
// Model Artifact Methods (implements model.ArtifactStore)
// -----------------------------------------------------------------------------

// SaveArtifact stores one model version. The (model_name, version) primary
// key means versions are never overwritten.
func (db *DB) SaveArtifact(ctx context.Context, artifact *model.Artifact) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal model artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO model_artifacts (model_name, version, artifact, trained_at)
		 VALUES ($1, $2, $3, $4)`,
		artifact.ModelName, artifact.Version, payload, artifact.TrainedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save model artifact v%d: %w", artifact.Version, err)
	}
	return nil
}

// LoadArtifact fetches one stored model version.
func (db *DB) LoadArtifact(ctx context.Context, modelName string, version int) (*model.Artifact, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT artifact FROM model_artifacts WHERE model_name = $1 AND version = $2`,
		modelName, version,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrModelVersionNotFound
		}
		return nil, fmt.Errorf("failed to load model artifact v%d: %w", version, err)
	}

	var artifact model.Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model artifact v%d: %w", version, err)
	}
	return &artifact, nil
}

// LatestVersion returns the highest stored version for the model, 0 when
// none exist.
func (db *DB) LatestVersion(ctx context.Context, modelName string) (int, error) {
	var version int
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM model_artifacts WHERE model_name = $1`,
		modelName,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest model version: %w", err)
	}
	return version, nil
}
