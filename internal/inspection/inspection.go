// Package inspection aggregates the category assessments of one inspection
// and decides whether it can be completed.
package inspection

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inflatable-compliance/internal/assessment"
	"inflatable-compliance/internal/calculator"
)

// Status is the lifecycle state of an inspection.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusComplete Status = "complete"
)

// UnitLabel names the missing unit link in MissingAssessments.
const UnitLabel = "Unit"

// Inspection is one examination of an inflatable unit. Assessments are
// created on first write; reads never create them.
type Inspection struct {
	ID     uuid.UUID
	UnitID string // empty when no unit is linked

	HasSlide          bool
	IsTotallyEnclosed bool
	IndoorOnly        bool
	Geometry          calculator.Geometry

	// Passed is the inspector's overall verdict, independent of the
	// assessments.
	Passed assessment.Check

	Status      Status
	CompletedAt time.Time
	CompletedBy string

	assessments map[assessment.Kind]*assessment.Assessment
}

// Entry pairs an applicable kind with its assessment, nil when never created.
type Entry struct {
	Kind       assessment.Kind
	Label      string
	Assessment *assessment.Assessment
}

// New returns a draft inspection for the unit.
func New(unitID string) *Inspection {
	return &Inspection{
		ID:          uuid.New(),
		UnitID:      unitID,
		Status:      StatusDraft,
		assessments: make(map[assessment.Kind]*assessment.Assessment),
	}
}

// Applies reports whether a category is part of this inspection given its
// configuration.
func (i *Inspection) Applies(kind assessment.Kind) bool {
	switch kind {
	case assessment.Anchorage:
		return !i.IndoorOnly
	case assessment.Slide:
		return i.HasSlide
	case assessment.Enclosed:
		return i.IsTotallyEnclosed
	case assessment.UserHeight, assessment.Structure, assessment.Materials, assessment.Fan:
		return true
	default:
		return false
	}
}

// ApplicableKinds returns the applicable categories in declared order.
func (i *Inspection) ApplicableKinds() []assessment.Kind {
	var out []assessment.Kind
	for _, k := range assessment.Kinds() {
		if i.Applies(k) {
			out = append(out, k)
		}
	}
	return out
}

// ApplicableAssessments returns an entry per applicable category. It does
// not create missing assessments.
func (i *Inspection) ApplicableAssessments() []Entry {
	kinds := i.ApplicableKinds()
	out := make([]Entry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Entry{Kind: k, Label: k.Label(), Assessment: i.assessments[k]})
	}
	return out
}

// GetOrCreateAssessment returns the assessment for kind, creating an empty
// one on first use. Repeated calls return the same assessment.
func (i *Inspection) GetOrCreateAssessment(kind assessment.Kind) (*assessment.Assessment, error) {
	if a, ok := i.assessments[kind]; ok {
		return a, nil
	}
	a, err := assessment.New(kind)
	if err != nil {
		return nil, err
	}
	if i.assessments == nil {
		i.assessments = make(map[assessment.Kind]*assessment.Assessment)
	}
	i.assessments[kind] = a
	return a, nil
}

// PeekAssessment returns the assessment for kind if it exists.
func (i *Inspection) PeekAssessment(kind assessment.Kind) (*assessment.Assessment, bool) {
	a, ok := i.assessments[kind]
	return a, ok
}

// MissingAssessments lists what blocks completion: "Unit" when no unit is
// linked, then each applicable category that is absent or incomplete.
func (i *Inspection) MissingAssessments() []string {
	var missing []string
	if i.UnitID == "" {
		missing = append(missing, UnitLabel)
	}
	for _, e := range i.ApplicableAssessments() {
		if e.Assessment == nil || !e.Assessment.IsComplete() {
			missing = append(missing, e.Label)
		}
	}
	return missing
}

// IsComplete reports whether every applicable assessment exists and is complete.
func (i *Inspection) IsComplete() bool {
	for _, e := range i.ApplicableAssessments() {
		if e.Assessment == nil || !e.Assessment.IsComplete() {
			return false
		}
	}
	return true
}

// CanBeCompleted reports whether a unit is linked and every applicable
// assessment is complete.
func (i *Inspection) CanBeCompleted() bool {
	return i.UnitID != "" && i.IsComplete()
}

// HasCriticalFailures reports whether any applicable assessment has a failed
// critical check.
func (i *Inspection) HasCriticalFailures() bool {
	for _, e := range i.ApplicableAssessments() {
		if e.Assessment != nil && e.Assessment.HasCriticalFailures() {
			return true
		}
	}
	return false
}

// CriticalFailureSummary names failed critical checks per category, e.g.
// "Structure: Seam Integrity; Fan: PAT".
func (i *Inspection) CriticalFailureSummary() string {
	var parts []string
	for _, e := range i.ApplicableAssessments() {
		if e.Assessment == nil {
			continue
		}
		if failed := e.Assessment.CriticalFailures(); len(failed) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Label, strings.Join(failed, ", ")))
		}
	}
	if len(parts) == 0 {
		return assessment.NoCriticalFailures
	}
	return strings.Join(parts, "; ")
}

// SetPassed records the inspector's overall verdict.
func (i *Inspection) SetPassed(c assessment.Check) {
	i.Passed = c
}

// SuggestedOutcome is Fail on any critical failure, Pass once complete
// without one, and Unassessed otherwise.
func (i *Inspection) SuggestedOutcome() assessment.Check {
	switch {
	case i.HasCriticalFailures():
		return assessment.Fail
	case i.IsComplete():
		return assessment.Pass
	default:
		return assessment.Unassessed
	}
}

// IsDraft reports whether the inspection has not been completed.
func (i *Inspection) IsDraft() bool {
	return i.Status != StatusComplete
}

// Complete moves a draft inspection to complete. Nothing changes when it
// fails.
func (i *Inspection) Complete(actor string, at time.Time) error {
	if !i.IsDraft() {
		return ErrAlreadyComplete
	}
	if !i.CanBeCompleted() {
		return &NotCompletableError{Missing: i.MissingAssessments()}
	}
	i.Status = StatusComplete
	i.CompletedAt = at
	i.CompletedBy = actor
	return nil
}
