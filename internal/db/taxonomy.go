package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// -----------------------------------------------------------------------------
// Taxonomy Methods (implements taxonomy.Repository)
// -----------------------------------------------------------------------------

// ActiveIndustryEntries returns active industry-layer synonym entries.
func (db *DB) ActiveIndustryEntries(ctx context.Context, industry string) ([]types.TaxonomyEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, industry, skill_name, variants, is_active, created_at
		 FROM taxonomy_entries
		 WHERE organization_id IS NULL AND lower(industry) = lower($1) AND is_active
		 ORDER BY created_at`,
		industry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list industry taxonomy entries: %w", err)
	}
	defer rows.Close()

	var entries []types.TaxonomyEntry
	for rows.Next() {
		var e types.TaxonomyEntry
		if err := rows.Scan(&e.ID, &e.Industry, &e.SkillName, &e.Variants, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read taxonomy entries: %w", err)
	}
	return entries, nil
}

// ActiveCustomEntries returns active organization-layer synonym entries.
func (db *DB) ActiveCustomEntries(ctx context.Context, orgID uuid.UUID) ([]types.TaxonomyEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, organization_id, skill_name, variants, is_active, created_at
		 FROM taxonomy_entries
		 WHERE organization_id = $1 AND is_active
		 ORDER BY created_at`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom taxonomy entries: %w", err)
	}
	defer rows.Close()

	var entries []types.TaxonomyEntry
	for rows.Next() {
		var e types.TaxonomyEntry
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.SkillName, &e.Variants, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read taxonomy entries: %w", err)
	}
	return entries, nil
}

// UpsertTaxonomyEntry writes one synonym entry. Callers are expected to
// invalidate the affected resolver cache key afterwards.
func (db *DB) UpsertTaxonomyEntry(ctx context.Context, entry types.TaxonomyEntry) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO taxonomy_entries (organization_id, industry, skill_name, variants, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (organization_id, industry, skill_name)
		 DO UPDATE SET variants = $4, is_active = $5
		 RETURNING id`,
		entry.OrganizationID, entry.Industry, entry.SkillName, entry.Variants, entry.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert taxonomy entry: %w", err)
	}
	return id, nil
}
