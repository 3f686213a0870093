package assessment

import (
	"math"
	"strings"
)

// IsComplete reports whether every declared measurement is recorded, every
// check has an outcome, and any category rule holds.
func (a *Assessment) IsComplete() bool {
	for _, f := range a.schema.Measurements {
		if _, ok := a.measurements[f]; !ok {
			return false
		}
	}
	for _, f := range a.schema.AllChecks {
		if !a.checks[f].Assessed() {
			return false
		}
	}
	if a.schema.complete != nil {
		return a.schema.complete(a)
	}
	return true
}

// HasCriticalFailures reports whether any critical check is Fail.
// Unassessed critical checks never count.
func (a *Assessment) HasCriticalFailures() bool {
	for _, f := range a.schema.CriticalChecks {
		if a.checks[f] == Fail {
			return true
		}
	}
	return false
}

// PassedChecksCount counts checks that are Pass.
func (a *Assessment) PassedChecksCount() int {
	n := 0
	for _, f := range a.schema.AllChecks {
		if a.checks[f] == Pass {
			n++
		}
	}
	return n
}

// CompletionPercentage is the share of trackable fields with a value,
// rounded to a whole percent.
func (a *Assessment) CompletionPercentage() int {
	total := len(a.schema.Trackable)
	if total == 0 {
		return 0
	}
	n := 0
	for _, f := range a.schema.Trackable {
		if a.filled(f) {
			n++
		}
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}

// CriticalFailures returns the labels of failed critical checks in declared order.
func (a *Assessment) CriticalFailures() []string {
	return a.failedLabels(a.schema.CriticalChecks)
}

// FailedChecks returns the labels of every failed check in declared order.
func (a *Assessment) FailedChecks() []string {
	return a.failedLabels(a.schema.AllChecks)
}

// CriticalFailureSummary names every failed critical check, or states that
// there are none.
func (a *Assessment) CriticalFailureSummary() string {
	failed := a.CriticalFailures()
	if len(failed) == 0 {
		return NoCriticalFailures
	}
	return "Critical failures: " + strings.Join(failed, ", ")
}

// NoCriticalFailures is the summary when no critical check failed.
const NoCriticalFailures = "No critical failures"

func (a *Assessment) failedLabels(fields []Field) []string {
	var out []string
	for _, f := range fields {
		if a.checks[f] == Fail {
			out = append(out, FieldLabel(f))
		}
	}
	return out
}
