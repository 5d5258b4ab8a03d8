// Package main provides the entry point for the candidate-ranker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rank_agent",
	Short: "Candidate Ranker CLI",
	Long:  "Candidate Ranker resolves skill taxonomies, scores resume-vacancy matches, and trains and evaluates the candidate ranking model from JSON artifacts or a PostgreSQL store.",
}

var (
	flagConfig  string
	flagVerbose bool
	flagJSON    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json-logs", false, "Emit logs as JSON")
}

// loadRunConfig merges the optional config file with defaults and the global
// flags.
func loadRunConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagJSON {
		cfg.JSONLogs = true
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger constructs the zap logger for one command run.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
