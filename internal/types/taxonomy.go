// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyLayer identifies which vocabulary a synonym entry came from.
type TaxonomyLayer string

const (
	// LayerStatic is the fixed baseline vocabulary loaded once per process.
	LayerStatic TaxonomyLayer = "static"
	// LayerIndustry is the industry-wide vocabulary keyed by industry name.
	LayerIndustry TaxonomyLayer = "industry"
	// LayerCustom is the organization-specific vocabulary keyed by organization ID.
	LayerCustom TaxonomyLayer = "custom"
)

// TaxonomyEntry is a single canonical skill with its accepted variants,
// as stored in the industry or custom layer.
type TaxonomyEntry struct {
	ID             uuid.UUID  `json:"id,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"` // set for custom entries
	Industry       string     `json:"industry,omitempty"`        // set for industry entries
	SkillName      string     `json:"skill_name"`
	Variants       []string   `json:"variants"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
}

// MergedTaxonomy maps canonical skill names to their variant sets after the
// layer merge for one (organization, industry) pair. Keys and values are the
// original (unnormalized) strings; equality checks normalize at lookup time.
type MergedTaxonomy map[string][]string
