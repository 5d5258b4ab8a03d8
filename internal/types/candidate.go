package types

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceEntry is one position in a candidate's work history.
type ExperienceEntry struct {
	Title      string `json:"title"`
	Company    string `json:"company,omitempty"`
	Months     int    `json:"months"`
	IsRelevant bool   `json:"is_relevant,omitempty"`
	EndedAt    string `json:"ended_at,omitempty"` // "YYYY-MM", empty means current
}

// EducationEntry is one degree or certification on a resume.
type EducationEntry struct {
	Level       string `json:"level"` // e.g. "bachelor", "master", "phd"
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
}

// Resume is the candidate-side input to matching and ranking. The core never
// parses documents; callers supply the already-extracted fields.
type Resume struct {
	ID             uuid.UUID         `json:"id"`
	OrganizationID uuid.UUID         `json:"organization_id"`
	Title          string            `json:"title,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	HasContact     bool              `json:"has_contact"`
	UpdatedAt      time.Time         `json:"updated_at,omitempty"`
}

// Vacancy is the job-side input: the required skills and experience floor a
// candidate is matched against.
type Vacancy struct {
	ID                  uuid.UUID `json:"id"`
	OrganizationID      uuid.UUID `json:"organization_id"`
	Industry            string    `json:"industry,omitempty"`
	Title               string    `json:"title"`
	RequiredSkills      []string  `json:"required_skills"`
	MinExperienceMonths int       `json:"min_experience_months,omitempty"`
}

// TotalExperienceMonths sums the months across all experience entries.
func (r *Resume) TotalExperienceMonths() int {
	total := 0
	for _, e := range r.Experience {
		total += e.Months
	}
	return total
}

// RelevantExperienceMonths sums the months across entries marked relevant.
func (r *Resume) RelevantExperienceMonths() int {
	total := 0
	for _, e := range r.Experience {
		if e.IsRelevant {
			total += e.Months
		}
	}
	return total
}
