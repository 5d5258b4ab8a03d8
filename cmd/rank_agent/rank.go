package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/model"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/pipeline"
	"github.com/jonathan/candidate-ranker/internal/scoring"
	"github.com/jonathan/candidate-ranker/internal/taxonomy"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a vacancy",
	Long:  "Scores and ranks candidates against a vacancy: resolves the skill taxonomy, combines the raw match signals under the active weight profile, extracts ranking features, and predicts rank scores with the trained model (falling back to the match score when untrained).",
	RunE:  runRank,
}

var (
	rankVacancy    string
	rankCandidates string
	rankArtifact   string
	rankOutput     string
)

func init() {
	rankCmd.Flags().StringVar(&rankVacancy, "vacancy", "", "Path to input Vacancy JSON file (required)")
	rankCmd.Flags().StringVar(&rankCandidates, "candidates", "", "Path to input candidates JSON file (required)")
	rankCmd.Flags().StringVarP(&rankArtifact, "model", "m", "", "Path to a trained model artifact JSON file (optional)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ranking JSON file (required)")

	for _, flag := range []string{"vacancy", "candidates", "out"} {
		if err := rankCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	// 1. Load vacancy and candidates
	var vacancy types.Vacancy
	if err := readJSONFile(rankVacancy, &vacancy); err != nil {
		return err
	}
	var candidates []pipeline.Candidate
	if err := readJSONFile(rankCandidates, &candidates); err != nil {
		return err
	}

	// 2. Assemble the pipeline components
	resolver := taxonomy.NewResolver(nil, nil,
		taxonomy.WithStaticSource(cfg.TaxonomyPath, cfg.SchemaPath),
		taxonomy.WithLogger(log),
	)
	scorer := scoring.NewScorer(nil, cfg.Profile, log)

	rankModel := model.New(cfg.ModelName, nil)
	if rankArtifact != "" {
		rankModel, err = loadModelFromArtifact(ctx, cfg.ModelName, rankArtifact)
		if err != nil {
			return err
		}
	}

	// 3. Rank
	p := pipeline.New(resolver, scorer, rankModel, nil, log)
	results, err := p.Rank(ctx, &vacancy, candidates)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRankedResults(&vacancy, results)
	}

	// 4. Write ranking output
	if err := writeJSONFile(rankOutput, results); err != nil {
		return err
	}

	fmt.Printf("Ranked %d candidates, output written to %s\n", len(results), rankOutput)
	return nil
}
