package taxonomy

import (
	"encoding/json"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// staticSource is the on-disk shape of the baseline synonym file. Entries may
// be grouped by category; loading flattens the grouping away.
type staticSource struct {
	Skills     map[string][]string            `json:"skills,omitempty"`
	Categories map[string]map[string][]string `json:"categories,omitempty"`
}

// loadStaticFile reads and flattens the static synonym source. All failure
// modes (missing file, malformed JSON, schema violation) degrade to an empty
// map with a logged diagnostic: the merge simply proceeds with fewer
// synonyms. The canonical name is always folded into its own variant set.
func loadStaticFile(path, schemaPath string, log *zap.Logger) types.MergedTaxonomy {
	empty := types.MergedTaxonomy{}
	if path == "" {
		return empty
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("static taxonomy source unavailable, continuing without it",
			zap.String("path", path), zap.Error(err))
		return empty
	}

	if schemaPath != "" {
		if err := validateStaticSource(schemaPath, data); err != nil {
			log.Warn("static taxonomy source failed schema validation, continuing without it",
				zap.String("path", path), zap.Error(err))
			return empty
		}
	}

	var src staticSource
	if err := json.Unmarshal(data, &src); err != nil {
		log.Warn("static taxonomy source is malformed, continuing without it",
			zap.String("path", path), zap.Error(err))
		return empty
	}

	flat := types.MergedTaxonomy{}
	for canonical, variants := range src.Skills {
		flat[canonical] = withCanonical(canonical, variants)
	}
	for _, group := range src.Categories {
		for canonical, variants := range group {
			flat[canonical] = withCanonical(canonical, variants)
		}
	}

	log.Debug("static taxonomy loaded",
		zap.String("path", path), zap.Int("skills", len(flat)))
	return flat
}

// validateStaticSource checks the raw source bytes against the JSON Schema.
func validateStaticSource(schemaPath string, data []byte) error {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		return &SourceSchemaError{Issues: describeIssues(result)}
	}
	return nil
}

func describeIssues(result *gojsonschema.Result) []string {
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues
}

// withCanonical returns the variant list with the canonical name guaranteed
// present (first), deduplicated by normalized form.
func withCanonical(canonical string, variants []string) []string {
	out := make([]string, 0, len(variants)+1)
	seen := map[string]bool{}

	add := func(name string) {
		norm := Normalize(name)
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		out = append(out, name)
	}

	add(canonical)
	for _, v := range variants {
		add(v)
	}
	return out
}
