// Package model implements the trainable candidate ranking model: training
// from labeled feedback, 0-100 rank prediction, recommendation bands, and
// versioned artifact persistence.
package model

import (
	"errors"
	"fmt"
)

// ErrModelNotTrained is returned by Predict and FeatureImportance while the
// model is in the untrained state. Callers are expected to fall back to the
// raw match score scaled to 0-100, not to swallow this as a zero.
var ErrModelNotTrained = errors.New("ranking model is not trained")

// ErrModelVersionNotFound is returned when loading a version identifier that
// has no stored artifact.
var ErrModelVersionNotFound = errors.New("model version not found")

// FeatureContractError reports an artifact whose feature-name set does not
// match the current contract. It is detected at load time so a mismatch
// never reaches prediction.
type FeatureContractError struct {
	Missing    []string
	Unexpected []string
}

func (e *FeatureContractError) Error() string {
	return fmt.Sprintf("model artifact feature contract mismatch (missing %v, unexpected %v)",
		e.Missing, e.Unexpected)
}
