package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/monitoring"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Check current model metrics against the rolling baseline",
	Long:  "Computes the rolling baseline from a performance snapshot history, compares the current metrics against it, writes a degradation report, and applies the retrain gating rules.",
	RunE:  runEvaluate,
}

var (
	evaluateHistory     string
	evaluateCurrent     string
	evaluateOutput      string
	evaluateThreshold   float64
	evaluateNewExamples int
	evaluateLastTrained string
	evaluateDataset     string
)

func init() {
	evaluateCmd.Flags().StringVar(&evaluateHistory, "history", "", "Path to input PerformanceSnapshot history JSON file (required)")
	evaluateCmd.Flags().StringVar(&evaluateCurrent, "current", "", "Path to input current Metrics JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output degradation report JSON file (required)")
	evaluateCmd.Flags().Float64Var(&evaluateThreshold, "threshold", monitoring.DefaultDegradationThreshold, "Metric drop that counts as degradation")
	evaluateCmd.Flags().IntVar(&evaluateNewExamples, "new-examples", 0, "Count of new labeled examples accumulated since last training")
	evaluateCmd.Flags().StringVar(&evaluateLastTrained, "last-trained", "", "RFC3339 timestamp of the last training (empty means never)")
	evaluateCmd.Flags().StringVar(&evaluateDataset, "dataset", types.DatasetProduction, "Dataset type the metrics were computed against")

	for _, flag := range []string{"history", "current", "out"} {
		if err := evaluateCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(evaluateCmd)
}

// evaluateReport is the evaluate command's JSON output.
type evaluateReport struct {
	Degradation   types.DegradationReport `json:"degradation"`
	Baseline      types.Metrics           `json:"baseline"`
	Current       types.Metrics           `json:"current"`
	ShouldRetrain bool                    `json:"should_retrain"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
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

	// 1. Load snapshot history into the in-memory repository
	var history []types.PerformanceSnapshot
	if err := readJSONFile(evaluateHistory, &history); err != nil {
		return err
	}
	repo := monitoring.NewInMemorySnapshotRepository()
	monitor := monitoring.NewMonitor(repo, cfg.BaselineWindow)
	for _, snapshot := range history {
		if snapshot.ModelName == "" {
			snapshot.ModelName = cfg.ModelName
		}
		if snapshot.DatasetType == "" {
			snapshot.DatasetType = evaluateDataset
		}
		if err := monitor.RecordSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to load snapshot history: %w", err)
		}
	}

	// 2. Load current metrics
	var current types.Metrics
	if err := readJSONFile(evaluateCurrent, &current); err != nil {
		return err
	}

	// 3. Baseline and degradation
	baseline, err := monitor.ComputeBaseline(ctx, cfg.ModelName, evaluateDataset)
	if err != nil {
		return fmt.Errorf("failed to compute baseline: %w", err)
	}
	report := monitoring.DetectDegradation(current, baseline, evaluateThreshold)

	// 4. Retrain gating
	var lastTrained time.Time
	if evaluateLastTrained != "" {
		lastTrained, err = time.Parse(time.RFC3339, evaluateLastTrained)
		if err != nil {
			return fmt.Errorf("invalid last-trained timestamp %q: %w", evaluateLastTrained, err)
		}
	}
	cooldown := time.Duration(cfg.RetrainCooldownHours) * time.Hour
	shouldRetrain := monitoring.ShouldRetrain(evaluateNewExamples, cfg.RetrainThreshold, lastTrained, cooldown)

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintDegradationReport(report)
	}

	// 5. Write the report
	out := evaluateReport{
		Degradation:   report,
		Baseline:      baseline,
		Current:       current,
		ShouldRetrain: shouldRetrain,
	}
	if err := writeJSONFile(evaluateOutput, out); err != nil {
		return err
	}

	status := "healthy"
	if report.IsDegraded {
		status = fmt.Sprintf("degraded (%v)", report.DegradedMetrics)
	}
	fmt.Printf("Model %s: %s; retrain: %t. Report written to %s\n",
		cfg.ModelName, status, shouldRetrain, evaluateOutput)
	return nil
}
