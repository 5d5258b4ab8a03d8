package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Weight Profile Methods (implements scoring.ProfileRepository)
// -----------------------------------------------------------------------------

const profileColumns = `id, name, organization_id, vacancy_id, keyword_weight, tfidf_weight, vector_weight, created_at`

// VacancyProfile returns the profile bound to the vacancy, or nil when the
// vacancy has no override. The vacancy_id unique index guarantees at most
// one bound profile per vacancy.
func (db *DB) VacancyProfile(ctx context.Context, vacancyID uuid.UUID) (*types.WeightProfile, error) {
	var p types.WeightProfile
	err := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM weight_profiles WHERE vacancy_id = $1`,
		vacancyID,
	).Scan(&p.ID, &p.Name, &p.OrganizationID, &p.VacancyID, &p.KeywordWeight, &p.TFIDFWeight, &p.VectorWeight, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vacancy profile: %w", err)
	}
	return &p, nil
}

// OrganizationDefault returns the organization's default profile (the org
// profile named "default"), or nil.
func (db *DB) OrganizationDefault(ctx context.Context, orgID uuid.UUID) (*types.WeightProfile, error) {
	var p types.WeightProfile
	err := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM weight_profiles
		 WHERE organization_id = $1 AND vacancy_id IS NULL AND lower(name) = 'default'`,
		orgID,
	).Scan(&p.ID, &p.Name, &p.OrganizationID, &p.VacancyID, &p.KeywordWeight, &p.TFIDFWeight, &p.VectorWeight, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization default profile: %w", err)
	}
	return &p, nil
}

// SaveProfile stores a weight profile after validation. Uniqueness of
// (organization, name) and of vacancy bindings is enforced by database
// constraints; a violation surfaces as the wrapped constraint error.
func (db *DB) SaveProfile(ctx context.Context, profile types.WeightProfile) (uuid.UUID, error) {
	if err := profile.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("invalid weight profile: %w", err)
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO weight_profiles (name, organization_id, vacancy_id, keyword_weight, tfidf_weight, vector_weight)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		profile.Name, profile.OrganizationID, profile.VacancyID,
		profile.KeywordWeight, profile.TFIDFWeight, profile.VectorWeight,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save weight profile: %w", err)
	}
	return id, nil
}
