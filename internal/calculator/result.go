package calculator

import (
	"fmt"
	"math"
	"strconv"

	"inflatable-compliance/internal/standard"
)

// Geometry is the outer size of a unit in meters.
type Geometry struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BaseArea is the footprint, length × width.
func (g Geometry) BaseArea() float64 { return g.Length * g.Width }

// SideArea is one long side panel, length × height.
func (g Geometry) SideArea() float64 { return g.Length * g.Height }

// FrontArea is one short end panel, width × height.
func (g Geometry) FrontArea() float64 { return g.Width * g.Height }

// Validate checks each dimension against the unit_length, unit_width and
// unit_height ranges of the standard table.
func (g Geometry) Validate() error {
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"unit_length", g.Length},
		{"unit_width", g.Width},
		{"unit_height", g.Height},
	} {
		if err := checkDimension(d.name, d.v); err != nil {
			return err
		}
	}
	return nil
}

func checkDimension(name string, v float64) error {
	r, ok := standard.Default().Measurement(name)
	if !ok {
		r = standard.Range{Type: standard.Decimal}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || !r.Contains(v) {
		return fmt.Errorf("%s = %g outside %s", name, v, r)
	}
	return nil
}

// maxCount caps derived counts so sums and doublings of them stay in int range.
const maxCount = 1 << 28

// count converts a non-negative whole quantity to int. Values that are not
// finite or exceed maxCount yield 0, meaning no count can be derived.
func count(v float64) int {
	if !(v >= 0 && v <= maxCount) {
		return 0
	}
	return int(v)
}

// Step is one line of a formula breakdown.
type Step struct {
	Label      string `json:"label"`
	Expression string `json:"expression"`
}

// Result is a calculated value with the ordered steps that produced it, so a
// reader can re-derive the number by hand.
type Result[T any] struct {
	Value     T      `json:"value"`
	Breakdown []Step `json:"formula_breakdown"`
}

func (r *Result[T]) step(label, expr string) {
	r.Breakdown = append(r.Breakdown, Step{Label: label, Expression: expr})
}

// num formats a quantity for a breakdown, rounded to two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
