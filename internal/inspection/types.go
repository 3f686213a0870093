package inspection

import (
	"inflatable-compliance/internal/assessment"
	"inflatable-compliance/internal/calculator"
)

// EvaluateRequest is the JSON body for POST /inspections/evaluate: a full
// snapshot of an inspection.
type EvaluateRequest struct {
	UnitID            string                     `json:"unit_id"`
	HasSlide          bool                       `json:"has_slide"`
	IsTotallyEnclosed bool                       `json:"is_totally_enclosed"`
	IndoorOnly        bool                       `json:"indoor_only"`
	Geometry          calculator.Geometry        `json:"geometry"`
	Passed            assessment.Check           `json:"passed"`
	Assessments       map[string]AssessmentInput `json:"assessments"`

	// CompleteAs, when set, attempts completion on behalf of this inspector.
	CompleteAs string `json:"complete_as,omitempty"`
}

// AssessmentInput is the recorded state of one category.
type AssessmentInput struct {
	Measurements map[string]float64          `json:"measurements"`
	Checks       map[string]assessment.Check `json:"checks"`
	Comments     map[string]string           `json:"comments"`
	Flags        map[string]bool             `json:"flags"`
}

// Completion reports the outcome of a requested completion.
type Completion struct {
	Completed bool     `json:"completed"`
	Error     string   `json:"error,omitempty"`
	Missing   []string `json:"missing,omitempty"`
}

// EvaluateResponse is the JSON response for POST /inspections/evaluate.
type EvaluateResponse struct {
	Report
	Completion *Completion `json:"completion,omitempty"`
	RequestID  string      `json:"request_id"`
}
