// Package assessment models the per-category bundles of measurements and
// pass/fail checks recorded during an inspection, and the compliance values
// derived from them.
package assessment

import (
	"fmt"
	"math"
	"strings"

	"inflatable-compliance/internal/standard"
)

// Assessment holds the recorded values for one category. Derived values are
// computed from the current fields on every read.
type Assessment struct {
	schema       *Schema
	measurements map[Field]float64
	checks       map[Field]Check
	comments     map[Field]string
	flags        map[Field]bool
}

// New returns an empty assessment of the given kind.
func New(kind Kind) (*Assessment, error) {
	s, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return &Assessment{
		schema:       s,
		measurements: make(map[Field]float64),
		checks:       make(map[Field]Check),
		comments:     make(map[Field]string),
		flags:        make(map[Field]bool),
	}, nil
}

// Kind returns the category.
func (a *Assessment) Kind() Kind { return a.schema.Kind }

// Label returns the human name of the category.
func (a *Assessment) Label() string { return a.schema.Label }

// ---------------------------------------------------------------------------
// Measurements
// ---------------------------------------------------------------------------

// SetMeasurement records a measured value. Values outside the field's range,
// or fractional values for whole-number fields, are rejected and the field is
// left unchanged.
func (a *Assessment) SetMeasurement(f Field, v float64) error {
	if !a.schema.isMeasurement(f) {
		return a.unknown(f)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %g", ErrOutOfRange, f, v)
	}
	if r, ok := standard.Default().Measurement(string(f)); ok {
		if !r.Contains(v) {
			return fmt.Errorf("%w: %s = %g, accepted %s", ErrOutOfRange, f, v, r)
		}
		if !r.Accepts(v) {
			return fmt.Errorf("%w: %s = %g", ErrNotInteger, f, v)
		}
	}
	a.measurements[f] = v
	return nil
}

// ClearMeasurement returns a measurement to not recorded.
func (a *Assessment) ClearMeasurement(f Field) error {
	if !a.schema.isMeasurement(f) {
		return a.unknown(f)
	}
	delete(a.measurements, f)
	return nil
}

// Measurement returns the recorded value, or nil when not recorded.
func (a *Assessment) Measurement(f Field) *float64 {
	v, ok := a.measurements[f]
	if !ok {
		return nil
	}
	return &v
}

// IntMeasurement is Measurement for whole-number fields.
func (a *Assessment) IntMeasurement(f Field) *int {
	v, ok := a.measurements[f]
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}

// ---------------------------------------------------------------------------
// Checks, comments, flags
// ---------------------------------------------------------------------------

// SetCheck records a pass/fail outcome. Setting Unassessed clears it.
func (a *Assessment) SetCheck(f Field, c Check) error {
	if !a.schema.isCheck(f) {
		return a.unknown(f)
	}
	if c == Unassessed {
		delete(a.checks, f)
		return nil
	}
	a.checks[f] = c
	return nil
}

// CheckValue returns the outcome of a check.
func (a *Assessment) CheckValue(f Field) Check {
	return a.checks[f]
}

// SetComment records free text against a comment or text field. An empty or
// blank string clears it.
func (a *Assessment) SetComment(f Field, text string) error {
	if !a.schema.isComment(f) && !a.schema.isText(f) {
		return a.unknown(f)
	}
	if strings.TrimSpace(text) == "" {
		delete(a.comments, f)
		return nil
	}
	a.comments[f] = text
	return nil
}

// Comment returns the recorded text, or "".
func (a *Assessment) Comment(f Field) string {
	return a.comments[f]
}

// SetFlag records a configuration flag such as a permanent roof.
func (a *Assessment) SetFlag(f Field, v bool) error {
	if !a.schema.isFlag(f) {
		return a.unknown(f)
	}
	a.flags[f] = v
	return nil
}

// Flag returns a configuration flag; unset flags are false.
func (a *Assessment) Flag(f Field) bool {
	return a.flags[f]
}

func (a *Assessment) unknown(f Field) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, a.schema.Kind, f)
}

// filled reports whether a trackable field has a value.
func (a *Assessment) filled(f Field) bool {
	if _, ok := a.measurements[f]; ok {
		return true
	}
	if a.checks[f].Assessed() {
		return true
	}
	_, ok := a.comments[f]
	return ok
}
