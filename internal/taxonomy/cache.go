package taxonomy

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Cache stores merged taxonomies keyed by (organization, industry). It is an
// explicit object rather than package state so tests and administrative
// writes can invalidate it deterministically. Entries never expire on their
// own; invalidation is always explicit.
//
// Concurrent lookups for the same key may race on a miss and recompute
// redundantly; that is acceptable because the merge is deterministic.
type Cache struct {
	mu      sync.RWMutex
	merged  map[string]types.MergedTaxonomy
	static  types.MergedTaxonomy
	hasStat bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{merged: make(map[string]types.MergedTaxonomy)}
}

// mergedKey builds the composite cache key for a merge result.
func mergedKey(orgID uuid.UUID, industry string) string {
	return fmt.Sprintf("merged:%s:%s", orgID, Normalize(industry))
}

// GetMerged returns the cached merge for the key, if present.
func (c *Cache) GetMerged(key string) (types.MergedTaxonomy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.merged[key]
	return m, ok
}

// SetMerged stores a merge result under the key.
func (c *Cache) SetMerged(key string, m types.MergedTaxonomy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merged[key] = m
}

// GetStatic returns the cached static layer, if loaded.
func (c *Cache) GetStatic() (types.MergedTaxonomy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.static, c.hasStat
}

// SetStatic stores the static layer. An empty map is a valid cached value:
// a failed static load is remembered until the cache is cleared.
func (c *Cache) SetStatic(m types.MergedTaxonomy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.static = m
	c.hasStat = true
}

// Invalidate drops the merge entry for one (organization, industry) pair.
func (c *Cache) Invalidate(orgID uuid.UUID, industry string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.merged, mergedKey(orgID, industry))
}

// Clear drops the static layer and all merge entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merged = make(map[string]types.MergedTaxonomy)
	c.static = nil
	c.hasStat = false
}

// Len reports the number of cached merge entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.merged)
}
