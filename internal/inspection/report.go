package inspection

import (
	"time"

	"inflatable-compliance/internal/assessment"
	"inflatable-compliance/internal/calculator"
	"inflatable-compliance/internal/standard"
)

// Report is the compliance summary of an inspection, the source data for a
// certificate.
type Report struct {
	InspectionID           string             `json:"inspection_id"`
	UnitID                 string             `json:"unit_id,omitempty"`
	Status                 Status             `json:"status"`
	Complete               bool               `json:"complete"`
	CanBeCompleted         bool               `json:"can_be_completed"`
	HasCriticalFailures    bool               `json:"has_critical_failures"`
	Passed                 assessment.Check   `json:"passed"`
	SuggestedOutcome       assessment.Check   `json:"suggested_outcome"`
	MissingAssessments     []string           `json:"missing_assessments"`
	CriticalFailureSummary string             `json:"critical_failure_summary"`
	CompletedAt            *time.Time         `json:"completed_at,omitempty"`
	CompletedBy            string             `json:"completed_by,omitempty"`
	Standard               StandardRef        `json:"standard"`
	Assessments            []AssessmentReport `json:"assessments"`
}

// StandardRef identifies the range table the report was evaluated against.
type StandardRef struct {
	Version string `json:"version"`
	SHA256  string `json:"sha256"`
}

// AssessmentReport summarises one applicable category.
type AssessmentReport struct {
	Kind                   assessment.Kind      `json:"kind"`
	Label                  string               `json:"label"`
	Present                bool                 `json:"present"`
	Complete               bool                 `json:"complete"`
	CompletionPercentage   int                  `json:"completion_percentage"`
	PassedChecks           int                  `json:"passed_checks"`
	FailedChecks           []string             `json:"failed_checks"`
	HasCriticalFailures    bool                 `json:"has_critical_failures"`
	CriticalFailureSummary string               `json:"critical_failure_summary"`
	Compliance             []ComplianceLine     `json:"compliance,omitempty"`
	Capacity               *calculator.Capacity `json:"capacity,omitempty"`
}

// ComplianceLine is one derived verdict, with the required value when the
// verdict compares against one.
type ComplianceLine struct {
	Name     string   `json:"name"`
	Required *float64 `json:"required,omitempty"`
	assessment.Compliance
}

// BuildReport summarises the inspection as it stands.
func BuildReport(i *Inspection) Report {
	t := standard.Default()
	rep := Report{
		InspectionID:           i.ID.String(),
		UnitID:                 i.UnitID,
		Status:                 i.Status,
		Complete:               i.IsComplete(),
		CanBeCompleted:         i.CanBeCompleted(),
		HasCriticalFailures:    i.HasCriticalFailures(),
		Passed:                 i.Passed,
		SuggestedOutcome:       i.SuggestedOutcome(),
		MissingAssessments:     nonNil(i.MissingAssessments()),
		CriticalFailureSummary: i.CriticalFailureSummary(),
		CompletedBy:            i.CompletedBy,
		Standard:               StandardRef{Version: t.Version, SHA256: t.SHA256},
	}
	if !i.CompletedAt.IsZero() {
		at := i.CompletedAt
		rep.CompletedAt = &at
	}

	for _, e := range i.ApplicableAssessments() {
		ar := AssessmentReport{
			Kind:                   e.Kind,
			Label:                  e.Label,
			FailedChecks:           []string{},
			CriticalFailureSummary: assessment.NoCriticalFailures,
		}
		if a := e.Assessment; a != nil {
			ar.Present = true
			ar.Complete = a.IsComplete()
			ar.CompletionPercentage = a.CompletionPercentage()
			ar.PassedChecks = a.PassedChecksCount()
			ar.FailedChecks = nonNil(a.FailedChecks())
			ar.HasCriticalFailures = a.HasCriticalFailures()
			ar.CriticalFailureSummary = a.CriticalFailureSummary()
			ar.Compliance, ar.Capacity = i.complianceLines(a)
		}
		rep.Assessments = append(rep.Assessments, ar)
	}
	return rep
}

func (i *Inspection) complianceLines(a *assessment.Assessment) ([]ComplianceLine, *calculator.Capacity) {
	switch a.Kind() {
	case assessment.UserHeight:
		lines := []ComplianceLine{
			{Name: "containing_wall_height", Compliance: a.HeightCompliance()},
			{Name: "user_capacity", Compliance: a.CapacityCompliance()},
		}
		if h := a.Measurement("tallest_user_height"); h != nil {
			lines[0].Required = required(calculator.RequiredWallHeight(*h).Value)
		}
		if res, ok := a.CalculatedCapacity(); ok {
			return lines, &res.Value
		}
		return lines, nil
	case assessment.Slide:
		return []ComplianceLine{
			{Name: "runout", Required: required(a.RequiredRunout()), Compliance: a.RunoutCompliance()},
			{Name: "slide_wall_height", Compliance: a.WallHeightCompliance()},
		}, nil
	case assessment.Structure:
		return []ComplianceLine{{Name: "measurements", Compliance: a.MeasurementCompliance()}}, nil
	case assessment.Anchorage:
		return []ComplianceLine{{
			Name:       "anchors",
			Required:   required(float64(a.RequiredAnchors(i.Geometry))),
			Compliance: a.AnchorCompliance(i.Geometry),
		}}, nil
	case assessment.Materials:
		return []ComplianceLine{{Name: "ropes", Compliance: a.RopeCompliance()}}, nil
	case assessment.Enclosed:
		users := i.maxUsers()
		return []ComplianceLine{{
			Name:       "exits",
			Required:   required(float64(a.RequiredExits(users))),
			Compliance: a.ExitCompliance(users),
		}}, nil
	default:
		return nil, nil
	}
}

// maxUsers is the largest user count recorded on the user height assessment.
func (i *Inspection) maxUsers() *int {
	if uh, ok := i.PeekAssessment(assessment.UserHeight); ok {
		return uh.MaxUsers()
	}
	return nil
}

func required(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
