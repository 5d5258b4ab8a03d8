package taxonomy

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Resolver merges the three synonym layers into one canonical-to-variants
// mapping per (organization, industry) pair and answers equivalence queries
// against it. Merge results are cached; the cache is invalidated explicitly,
// never by TTL.
type Resolver struct {
	repo       Repository
	cache      *Cache
	staticPath string
	schemaPath string
	log        *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStaticSource points the resolver at the baseline synonym JSON file and
// its validation schema. Without it the static layer is empty.
func WithStaticSource(path, schemaPath string) ResolverOption {
	return func(r *Resolver) {
		r.staticPath = path
		r.schemaPath = schemaPath
	}
}

// WithLogger attaches a logger for soft-fail diagnostics.
func WithLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver builds a resolver over the given repository and cache. A nil
// cache gets a private one; a nil repository means the non-database mode.
func NewResolver(repo Repository, cache *Cache, opts ...ResolverOption) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if repo == nil {
		repo = NewInMemoryRepository()
	}
	r := &Resolver{repo: repo, cache: cache}
	for _, opt := range opts {
		opt(r)
	}
	r.log = logger.OrNop(r.log)
	return r
}

// LoadStatic returns the static layer, loading and caching it on first use.
// Load failures degrade to an empty layer and are remembered until ClearCache.
func (r *Resolver) LoadStatic() types.MergedTaxonomy {
	if cached, ok := r.cache.GetStatic(); ok {
		return cached
	}
	flat := loadStaticFile(r.staticPath, r.schemaPath, r.log)
	r.cache.SetStatic(flat)
	return flat
}

// LoadIndustry fetches the active industry layer. An unavailable backing
// store degrades to an empty map.
func (r *Resolver) LoadIndustry(ctx context.Context, industry string) types.MergedTaxonomy {
	if industry == "" {
		return types.MergedTaxonomy{}
	}
	entries, err := r.repo.ActiveIndustryEntries(ctx, industry)
	if err != nil {
		r.log.Warn("industry taxonomy fetch failed, continuing without it",
			zap.String("industry", industry), zap.Error(err))
		return types.MergedTaxonomy{}
	}
	return entriesToMap(entries)
}

// LoadCustom fetches the active organization layer with the same soft-fail
// semantics as LoadIndustry.
func (r *Resolver) LoadCustom(ctx context.Context, orgID uuid.UUID) types.MergedTaxonomy {
	if orgID == uuid.Nil {
		return types.MergedTaxonomy{}
	}
	entries, err := r.repo.ActiveCustomEntries(ctx, orgID)
	if err != nil {
		r.log.Warn("custom taxonomy fetch failed, continuing without it",
			zap.String("organization_id", orgID.String()), zap.Error(err))
		return types.MergedTaxonomy{}
	}
	return entriesToMap(entries)
}

// Resolve merges static, industry, and custom layers for the pair.
// Priority: static and industry union per canonical skill; a custom entry
// fully replaces the merged variant set for its canonical skill. The result
// is cached under "merged:{org}:{industry}".
func (r *Resolver) Resolve(ctx context.Context, orgID uuid.UUID, industry string) types.MergedTaxonomy {
	key := mergedKey(orgID, industry)
	if cached, ok := r.cache.GetMerged(key); ok {
		return cached
	}

	merged := types.MergedTaxonomy{}

	// Static first, then industry unioned on top of it.
	for canonical, variants := range r.LoadStatic() {
		merged[canonical] = withCanonical(canonical, variants)
	}
	for canonical, variants := range r.LoadIndustry(ctx, industry) {
		key := canonical
		if existing := findCanonical(merged, canonical); existing != "" {
			key = existing
		}
		merged[key] = unionVariants(merged, key, variants)
	}

	// Custom replaces wholesale: the organization knows best.
	for canonical, variants := range r.LoadCustom(ctx, orgID) {
		if existing := findCanonical(merged, canonical); existing != "" {
			delete(merged, existing)
		}
		merged[canonical] = withCanonical(canonical, variants)
	}

	r.cache.SetMerged(key, merged)
	return merged
}

// ClearCache drops the static layer and every cached merge.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// Invalidate drops the cached merge for one (organization, industry) pair,
// e.g. after an administrative taxonomy write.
func (r *Resolver) Invalidate(orgID uuid.UUID, industry string) {
	r.cache.Invalidate(orgID, industry)
}

// EquivalenceSet builds the full normalized equivalence set for a required
// skill: the skill itself, every variant of its canonical entry, and the
// whole family of any entry that lists the skill as a variant. Synonym
// lookup is bidirectional.
func EquivalenceSet(required string, merged types.MergedTaxonomy) map[string]bool {
	set := map[string]bool{}
	reqNorm := Normalize(required)
	if reqNorm == "" {
		return set
	}
	set[reqNorm] = true

	for canonical, variants := range merged {
		family := normalizeSet(append([]string{canonical}, variants...))
		if family[reqNorm] {
			for norm := range family {
				set[norm] = true
			}
		}
	}
	return set
}

// FindEquivalentSkill resolves the merged taxonomy for the pair and returns
// the first resume skill (in original list order) equivalent to the required
// skill, or "" when none is.
func (r *Resolver) FindEquivalentSkill(ctx context.Context, resumeSkills []string, required string, orgID uuid.UUID, industry string) string {
	merged := r.Resolve(ctx, orgID, industry)
	equivalent := EquivalenceSet(required, merged)
	for _, skill := range resumeSkills {
		if equivalent[Normalize(skill)] {
			return skill
		}
	}
	return ""
}

// entriesToMap flattens repository rows into a canonical-to-variants map,
// guaranteeing canonical self-membership. Later duplicate rows for the same
// canonical name extend the variant set.
func entriesToMap(entries []types.TaxonomyEntry) types.MergedTaxonomy {
	m := types.MergedTaxonomy{}
	for _, e := range entries {
		if Normalize(e.SkillName) == "" {
			continue
		}
		if existing := findCanonical(m, e.SkillName); existing != "" {
			m[existing] = unionVariants(m, existing, e.Variants)
			continue
		}
		m[e.SkillName] = withCanonical(e.SkillName, e.Variants)
	}
	return m
}

// findCanonical locates an existing map key equal to name under
// normalization, or "".
func findCanonical(m types.MergedTaxonomy, name string) string {
	norm := Normalize(name)
	for canonical := range m {
		if Normalize(canonical) == norm {
			return canonical
		}
	}
	return ""
}

// unionVariants merges new variants into the set already held for canonical,
// deduplicating by normalized form and preserving first-seen spelling.
func unionVariants(m types.MergedTaxonomy, canonical string, variants []string) []string {
	existingKey := findCanonical(m, canonical)
	base := m[existingKey]
	if existingKey == "" {
		base = nil
	}

	out := withCanonical(canonical, base)
	seen := normalizeSet(out)
	for _, v := range variants {
		norm := Normalize(v)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, v)
	}
	return out
}
