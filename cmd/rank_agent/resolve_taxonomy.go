package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var resolveTaxonomyCmd = &cobra.Command{
	Use:   "resolve-taxonomy",
	Short: "Merge the skill synonym layers for an organization and industry",
	Long:  "Merges the static, industry, and organization-specific skill synonym layers under the layer priority rules and writes the merged canonical-to-variants map as JSON.",
	RunE:  runResolveTaxonomy,
}

var (
	resolveTaxonomyEntries  string
	resolveTaxonomyOrg      string
	resolveTaxonomyIndustry string
	resolveTaxonomyOutput   string
)

func init() {
	resolveTaxonomyCmd.Flags().StringVarP(&resolveTaxonomyEntries, "entries", "e", "", "Path to industry/custom TaxonomyEntry JSON file (optional)")
	resolveTaxonomyCmd.Flags().StringVar(&resolveTaxonomyOrg, "org", "", "Organization UUID (optional)")
	resolveTaxonomyCmd.Flags().StringVarP(&resolveTaxonomyIndustry, "industry", "i", "", "Industry name (optional)")
	resolveTaxonomyCmd.Flags().StringVarP(&resolveTaxonomyOutput, "out", "o", "", "Path to output merged taxonomy JSON file (required)")

	if err := resolveTaxonomyCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(resolveTaxonomyCmd)
}

func runResolveTaxonomy(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	orgID := uuid.Nil
	if resolveTaxonomyOrg != "" {
		orgID, err = uuid.Parse(resolveTaxonomyOrg)
		if err != nil {
			return fmt.Errorf("invalid organization UUID %q: %w", resolveTaxonomyOrg, err)
		}
	}

	// Load industry/custom entries into the in-memory repository.
	repo := taxonomy.NewInMemoryRepository()
	if resolveTaxonomyEntries != "" {
		var entries []types.TaxonomyEntry
		if err := readJSONFile(resolveTaxonomyEntries, &entries); err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.OrganizationID != nil {
				repo.AddCustomEntry(*entry.OrganizationID, entry)
			} else if entry.Industry != "" {
				repo.AddIndustryEntry(entry.Industry, entry)
			}
		}
	}

	resolver := taxonomy.NewResolver(repo, nil,
		taxonomy.WithStaticSource(cfg.TaxonomyPath, cfg.SchemaPath),
		taxonomy.WithLogger(log),
	)

	merged := resolver.Resolve(cmd.Context(), orgID, resolveTaxonomyIndustry)

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintMergedTaxonomy(merged)
	}

	if err := writeJSONFile(resolveTaxonomyOutput, merged); err != nil {
		return err
	}

	fmt.Printf("Merged taxonomy written to %s (%d canonical skills)\n", resolveTaxonomyOutput, len(merged))
	return nil
}
