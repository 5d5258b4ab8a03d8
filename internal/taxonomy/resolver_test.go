package taxonomy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// writeStaticFile writes a static taxonomy source to a temp file.
func writeStaticFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolver_LoadStatic_FlattensCategories(t *testing.T) {
	path := writeStaticFile(t, `{
		"categories": {
			"languages": {"Go": ["Golang"], "Python": []},
			"frontend": {"React": ["ReactJS", "React.js"]}
		}
	}`)

	resolver := NewResolver(nil, nil, WithStaticSource(path, ""))
	static := resolver.LoadStatic()

	require.Len(t, static, 3)
	assert.ElementsMatch(t, []string{"Go", "Golang"}, static["Go"])
	assert.ElementsMatch(t, []string{"React", "ReactJS", "React.js"}, static["React"])
	// Canonical is always in its own variant set
	assert.Contains(t, static["Python"], "Python")
}

func TestResolver_LoadStatic_MissingFileFailsSoft(t *testing.T) {
	resolver := NewResolver(nil, nil, WithStaticSource("/nonexistent/taxonomy.json", ""))
	assert.Empty(t, resolver.LoadStatic())
}

func TestResolver_LoadStatic_MalformedJSONFailsSoft(t *testing.T) {
	path := writeStaticFile(t, `{not valid json`)
	resolver := NewResolver(nil, nil, WithStaticSource(path, ""))
	assert.Empty(t, resolver.LoadStatic())
}

func TestResolver_LoadStatic_SchemaViolationFailsSoft(t *testing.T) {
	schemaPath := filepath.Join("..", "..", "schemas", "skill_taxonomy.schema.json")
	if _, err := os.Stat(schemaPath); err != nil {
		t.Skip("schema file not reachable from test working directory")
	}

	// Valid JSON, but neither "skills" nor "categories" present.
	path := writeStaticFile(t, `{"unexpected": true}`)
	resolver := NewResolver(nil, nil, WithStaticSource(path, schemaPath))
	assert.Empty(t, resolver.LoadStatic())
}

func TestResolver_LoadStatic_CachedUntilClear(t *testing.T) {
	path := writeStaticFile(t, `{"skills": {"Go": ["Golang"]}}`)
	resolver := NewResolver(nil, nil, WithStaticSource(path, ""))

	first := resolver.LoadStatic()
	require.Len(t, first, 1)

	// Overwrite the file; the cached value must survive until ClearCache.
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": {"Rust": []}}`), 0644))
	assert.Contains(t, resolver.LoadStatic(), "Go")

	resolver.ClearCache()
	reloaded := resolver.LoadStatic()
	assert.Contains(t, reloaded, "Rust")
	assert.NotContains(t, reloaded, "Go")
}

func TestResolver_Resolve_UnionsStaticAndIndustry(t *testing.T) {
	path := writeStaticFile(t, `{"skills": {"Python": ["Python3"]}}`)

	repo := NewInMemoryRepository()
	repo.AddIndustryEntry("fintech", types.TaxonomyEntry{
		SkillName: "Python", Variants: []string{"CPython"}, IsActive: true,
	})

	resolver := NewResolver(repo, nil, WithStaticSource(path, ""))
	merged := resolver.Resolve(context.Background(), uuid.Nil, "fintech")

	require.Contains(t, merged, "Python")
	assert.ElementsMatch(t, []string{"Python", "Python3", "CPython"}, merged["Python"])
}

func TestResolver_Resolve_CustomFullyReplaces(t *testing.T) {
	path := writeStaticFile(t, `{"skills": {"React": ["ReactJS", "React Native"]}}`)

	orgID := uuid.New()
	repo := NewInMemoryRepository()
	repo.AddIndustryEntry("tech", types.TaxonomyEntry{
		SkillName: "React", Variants: []string{"React Web"}, IsActive: true,
	})
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "React", Variants: []string{"ReactJS", "React.js"}, IsActive: true,
	})

	resolver := NewResolver(repo, nil, WithStaticSource(path, ""))
	merged := resolver.Resolve(context.Background(), orgID, "tech")

	// The custom entry replaces the union wholesale: no React Native, no React Web.
	require.Contains(t, merged, "React")
	assert.ElementsMatch(t, []string{"React", "ReactJS", "React.js"}, merged["React"])
}

func TestResolver_Resolve_InactiveEntriesIgnored(t *testing.T) {
	orgID := uuid.New()
	repo := NewInMemoryRepository()
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "Kotlin", Variants: []string{"kt"}, IsActive: false,
	})

	resolver := NewResolver(repo, nil)
	merged := resolver.Resolve(context.Background(), orgID, "")
	assert.NotContains(t, merged, "Kotlin")
}

func TestResolver_Resolve_CachesPerPair(t *testing.T) {
	orgID := uuid.New()
	repo := NewInMemoryRepository()
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "Go", Variants: []string{"Golang"}, IsActive: true,
	})

	cache := NewCache()
	resolver := NewResolver(repo, cache)
	resolver.Resolve(context.Background(), orgID, "tech")
	require.Equal(t, 1, cache.Len())

	// A later write is invisible until the pair is invalidated.
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "Rust", Variants: nil, IsActive: true,
	})
	assert.NotContains(t, resolver.Resolve(context.Background(), orgID, "tech"), "Rust")

	resolver.Invalidate(orgID, "tech")
	assert.Contains(t, resolver.Resolve(context.Background(), orgID, "tech"), "Rust")
}

func TestResolver_NoDatabaseMode(t *testing.T) {
	// A nil repository is the supported non-database mode: empty layers, no error.
	resolver := NewResolver(nil, nil)
	merged := resolver.Resolve(context.Background(), uuid.New(), "fintech")
	assert.Empty(t, merged)
}

func TestEquivalenceSet_Bidirectional(t *testing.T) {
	merged := types.MergedTaxonomy{
		"React": {"React", "ReactJS", "React.js"},
	}

	// Looking up by a variant pulls in the canonical and its whole family.
	set := EquivalenceSet("ReactJS", merged)
	assert.True(t, set["react"])
	assert.True(t, set["reactjs"])
	assert.True(t, set["react.js"])

	// Looking up by canonical covers variants too.
	set = EquivalenceSet("React", merged)
	assert.True(t, set["reactjs"])
}

func TestResolver_FindEquivalentSkill(t *testing.T) {
	orgID := uuid.New()
	repo := NewInMemoryRepository()
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "React", Variants: []string{"ReactJS", "React.js"}, IsActive: true,
	})

	resolver := NewResolver(repo, nil)

	found := resolver.FindEquivalentSkill(context.Background(),
		[]string{"ReactJS", "Python"}, "React", orgID, "")
	assert.Equal(t, "ReactJS", found)

	notFound := resolver.FindEquivalentSkill(context.Background(),
		[]string{"Java", "Python"}, "React", orgID, "")
	assert.Empty(t, notFound)
}

func TestCache_ConcurrentResolves(t *testing.T) {
	orgID := uuid.New()
	repo := NewInMemoryRepository()
	repo.AddCustomEntry(orgID, types.TaxonomyEntry{
		SkillName: "Go", Variants: []string{"Golang"}, IsActive: true,
	})
	resolver := NewResolver(repo, nil)

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			merged := resolver.Resolve(context.Background(), orgID, "tech")
			assert.Contains(t, merged, "Go")
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}
