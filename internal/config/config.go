// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied where the config file and flags are silent.
const (
	DefaultModelName            = "candidate-ranker"
	DefaultProfile              = "Balanced"
	DefaultBaselineWindow       = 5
	DefaultRetrainThreshold     = 50
	DefaultRetrainCooldownHours = 24
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	TaxonomyPath string `json:"taxonomy,omitempty"`        // Path to the static skill-synonym JSON source
	SchemaPath   string `json:"taxonomy_schema,omitempty"` // Path to the taxonomy JSON Schema

	// Behavior
	Profile              string `json:"profile,omitempty"`                // Named weight-profile preset
	ModelName            string `json:"model_name,omitempty"`             // Model name for artifacts and snapshots
	BaselineWindow       int    `json:"baseline_window,omitempty"`        // Rolling snapshot count for baselines
	RetrainThreshold     int    `json:"retrain_threshold,omitempty"`      // New-example count gating retraining
	RetrainCooldownHours int    `json:"retrain_cooldown_hours,omitempty"` // Hours between trainings
	Verbose              bool   `json:"verbose,omitempty"`                // Print detailed debug information
	JSONLogs             bool   `json:"json_logs,omitempty"`              // Emit logs as JSON

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty means in-memory mode
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.BaselineWindow < 0 {
		return fmt.Errorf("config error: 'baseline_window' must be non-negative")
	}
	if c.RetrainThreshold < 0 {
		return fmt.Errorf("config error: 'retrain_threshold' must be non-negative")
	}
	if c.RetrainCooldownHours < 0 {
		return fmt.Errorf("config error: 'retrain_cooldown_hours' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.TaxonomyPath)
		}
	}
	if c.SchemaPath != "" {
		if _, err := os.Stat(c.SchemaPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy schema file not found: %s", c.SchemaPath)
		}
	}

	return nil
}

// ApplyDefaults fills zero-valued fields with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Profile == "" {
		c.Profile = DefaultProfile
	}
	if c.ModelName == "" {
		c.ModelName = DefaultModelName
	}
	if c.BaselineWindow == 0 {
		c.BaselineWindow = DefaultBaselineWindow
	}
	if c.RetrainThreshold == 0 {
		c.RetrainThreshold = DefaultRetrainThreshold
	}
	if c.RetrainCooldownHours == 0 {
		c.RetrainCooldownHours = DefaultRetrainCooldownHours
	}
}
