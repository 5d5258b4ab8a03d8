package taxonomy

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Repository fetches industry and organization-specific synonym entries.
// Implementations live behind this narrow interface so the resolver never
// cares whether a database is configured; InMemoryRepository doubles as the
// explicit "no database" mode.
type Repository interface {
	// ActiveIndustryEntries returns active entries for one industry.
	ActiveIndustryEntries(ctx context.Context, industry string) ([]types.TaxonomyEntry, error)
	// ActiveCustomEntries returns active entries for one organization.
	ActiveCustomEntries(ctx context.Context, orgID uuid.UUID) ([]types.TaxonomyEntry, error)
}

// InMemoryRepository holds taxonomy entries in process memory. With no
// entries loaded it implements the supported non-database mode: both lookups
// return empty slices and never error.
type InMemoryRepository struct {
	industry map[string][]types.TaxonomyEntry
	custom   map[uuid.UUID][]types.TaxonomyEntry
}

// NewInMemoryRepository returns an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		industry: make(map[string][]types.TaxonomyEntry),
		custom:   make(map[uuid.UUID][]types.TaxonomyEntry),
	}
}

// AddIndustryEntry registers an industry-layer entry.
func (r *InMemoryRepository) AddIndustryEntry(industry string, entry types.TaxonomyEntry) {
	key := Normalize(industry)
	entry.Industry = industry
	r.industry[key] = append(r.industry[key], entry)
}

// AddCustomEntry registers an organization-layer entry.
func (r *InMemoryRepository) AddCustomEntry(orgID uuid.UUID, entry types.TaxonomyEntry) {
	entry.OrganizationID = &orgID
	r.custom[orgID] = append(r.custom[orgID], entry)
}

// ActiveIndustryEntries returns active entries for the industry.
func (r *InMemoryRepository) ActiveIndustryEntries(_ context.Context, industry string) ([]types.TaxonomyEntry, error) {
	return filterActive(r.industry[Normalize(industry)]), nil
}

// ActiveCustomEntries returns active entries for the organization.
func (r *InMemoryRepository) ActiveCustomEntries(_ context.Context, orgID uuid.UUID) ([]types.TaxonomyEntry, error) {
	return filterActive(r.custom[orgID]), nil
}

func filterActive(entries []types.TaxonomyEntry) []types.TaxonomyEntry {
	active := make([]types.TaxonomyEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsActive {
			active = append(active, e)
		}
	}
	return active
}
