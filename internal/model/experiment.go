package model

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// Experiment assigns candidates to A/B groups deterministically: the same
// candidate always lands in the same group for a given experiment, with no
// assignment state to persist.
type Experiment struct {
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
}

// NewExperiment builds an experiment. With fewer than two groups there is
// nothing to split, and Assign returns the empty group.
func NewExperiment(name string, groups ...string) *Experiment {
	return &Experiment{Name: name, Groups: groups}
}

// Assign buckets a candidate into one of the experiment's groups by hashing
// (experiment name, candidate ID).
func (e *Experiment) Assign(resumeID uuid.UUID) string {
	if e == nil || len(e.Groups) < 2 {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(e.Name))
	h.Write(resumeID[:])
	return e.Groups[h.Sum32()%uint32(len(e.Groups))]
}
