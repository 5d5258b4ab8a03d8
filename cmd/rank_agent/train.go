package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/model"
	"github.com/jonathan/candidate-ranker/internal/monitoring"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the ranking model from labeled examples",
	Long:  "Fits the ranking model on labeled (features, outcome) examples, writes the new versioned model artifact as JSON, and reports training-set metrics.",
	RunE:  runTrain,
}

var (
	trainExamples string
	trainOutput   string
)

func init() {
	trainCmd.Flags().StringVarP(&trainExamples, "examples", "e", "", "Path to input LabeledExample JSON file (required)")
	trainCmd.Flags().StringVarP(&trainOutput, "out", "o", "", "Path to output model artifact JSON file (required)")

	for _, flag := range []string{"examples", "out"} {
		if err := trainCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
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

	// 1. Load labeled examples
	var examples []types.LabeledExample
	if err := readJSONFile(trainExamples, &examples); err != nil {
		return err
	}

	// 2. Train
	rankModel := model.New(cfg.ModelName, nil)
	artifact, err := rankModel.Train(ctx, examples)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	// 3. Attach training-set metrics to the artifact
	artifact.Metrics = trainingMetrics(rankModel, examples)

	// 4. Write the artifact
	if err := writeJSONFile(trainOutput, artifact); err != nil {
		return err
	}

	fmt.Printf("Trained model %s v%d on %d examples, artifact written to %s\n",
		artifact.ModelName, artifact.Version, artifact.ExampleCount, trainOutput)
	for name, value := range artifact.Metrics {
		fmt.Printf("  %-10s %.3f\n", name, value)
	}
	return nil
}

// trainingMetrics scores the model against its own training set.
func trainingMetrics(m *model.Model, examples []types.LabeledExample) types.Metrics {
	predictions := make([]float64, 0, len(examples))
	labels := make([]float64, 0, len(examples))
	for _, ex := range examples {
		score, _, err := m.Predict(ex.Features)
		if err != nil {
			continue
		}
		predictions = append(predictions, score/100)
		labels = append(labels, ex.Outcome)
	}
	return monitoring.ComputeMetrics(predictions, labels)
}

// loadModelFromArtifact builds a model restored from an artifact JSON file,
// going through the store so the feature contract check runs on load.
func loadModelFromArtifact(ctx context.Context, name, path string) (*model.Model, error) {
	var artifact model.Artifact
	if err := readJSONFile(path, &artifact); err != nil {
		return nil, err
	}
	artifact.ModelName = name

	store := model.NewInMemoryArtifactStore()
	if err := store.SaveArtifact(ctx, &artifact); err != nil {
		return nil, err
	}

	m := model.New(name, store)
	if err := m.Load(ctx, artifact.Version); err != nil {
		return nil, fmt.Errorf("failed to load model artifact %s: %w", path, err)
	}
	return m, nil
}
