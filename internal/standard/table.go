// Package standard holds the EN 14960 limits the compliance engine checks
// against. Ranges and thresholds are data (ranges.yaml, embedded at build time)
// so a revision of the standard is a single edit.
package standard

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed ranges.yaml
var rawRanges []byte

// Limit names in the limits section.
const (
	LimitStitchLength   = "stitch_length"
	LimitUnitPressure   = "unit_pressure"
	LimitFallHeight     = "critical_fall_off_height"
	LimitRopeDiameter   = "rope_diameter"
	ThresholdExitsUsers = "multiple_exits_users"
)

// ValueType is the numeric kind a range accepts.
type ValueType string

const (
	Decimal ValueType = "decimal"
	Integer ValueType = "integer"
)

// Range is an inclusive numeric interval. A nil bound is open.
type Range struct {
	Type ValueType `yaml:"type"`
	Unit string    `yaml:"unit"`
	Min  *float64  `yaml:"min"`
	Max  *float64  `yaml:"max"`
}

// Contains reports whether v lies within the range bounds.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Accepts is Contains plus the integer constraint for integer ranges.
func (r Range) Accepts(v float64) bool {
	if !r.Contains(v) {
		return false
	}
	return r.Type != Integer || v == math.Trunc(v)
}

// String renders the range for messages, e.g. "3..8 mm" or ">= 1 kPa".
func (r Range) String() string {
	var s string
	switch {
	case r.Min != nil && r.Max != nil:
		s = fmt.Sprintf("%g..%g", *r.Min, *r.Max)
	case r.Min != nil:
		s = fmt.Sprintf(">= %g", *r.Min)
	case r.Max != nil:
		s = fmt.Sprintf("<= %g", *r.Max)
	default:
		s = "any"
	}
	if r.Unit != "" {
		s += " " + r.Unit
	}
	return s
}

// HeightBands are the containing wall bands keyed on user height.
type HeightBands struct {
	NoWallBelow        float64 `yaml:"no_wall_below"`
	BasicMax           float64 `yaml:"basic_max"`
	EnhancedMax        float64 `yaml:"enhanced_max"`
	Maximum            float64 `yaml:"maximum"`
	EnhancedMultiplier float64 `yaml:"enhanced_multiplier"`
}

// CapacityBand is the play area needed per user of one height category.
type CapacityBand struct {
	HeightMM    int     `yaml:"height_mm"`
	AreaPerUser float64 `yaml:"area_per_user"`
}

// HeightM is the category height in meters.
func (b CapacityBand) HeightM() float64 {
	return float64(b.HeightMM) / 1000.0
}

// Table is the decoded range table.
type Table struct {
	Version      string             `yaml:"version"`
	Limits       map[string]Range   `yaml:"limits"`
	Thresholds   map[string]float64 `yaml:"thresholds"`
	HeightBands  HeightBands        `yaml:"height_bands"`
	Capacity     []CapacityBand     `yaml:"capacity"`
	Measurements map[string]Range   `yaml:"measurements"`

	// SHA256 of the source document, recorded on reports for provenance.
	SHA256 string `yaml:"-"`
}

var defaultTable = MustParse(rawRanges)

// Default returns the table compiled into the binary. It must not be mutated.
func Default() *Table {
	return defaultTable
}

// Parse decodes and validates a range table document.
func Parse(raw []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse range table: %w", err)
	}
	if err := validateTable(&t); err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	t.SHA256 = hex.EncodeToString(sum[:])
	sort.Slice(t.Capacity, func(i, j int) bool {
		return t.Capacity[i].HeightMM < t.Capacity[j].HeightMM
	})
	return &t, nil
}

// MustParse is Parse for documents known to be valid; it panics otherwise.
func MustParse(raw []byte) *Table {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// maxIntegerValue bounds integer ranges so stored counts convert to int
// without overflow on any platform.
const maxIntegerValue = 1 << 30

func validateTable(t *Table) error {
	if strings.TrimSpace(t.Version) == "" {
		return errors.New("range table: version is required")
	}
	for _, name := range []string{LimitStitchLength, LimitUnitPressure, LimitFallHeight, LimitRopeDiameter} {
		if _, ok := t.Limits[name]; !ok {
			return fmt.Errorf("range table: missing limit: %s", name)
		}
	}
	if _, ok := t.Thresholds[ThresholdExitsUsers]; !ok {
		return fmt.Errorf("range table: missing threshold: %s", ThresholdExitsUsers)
	}
	for name, r := range t.Limits {
		if err := validateRange(r); err != nil {
			return fmt.Errorf("range table: limit %s: %w", name, err)
		}
	}
	for name, r := range t.Measurements {
		if err := validateRange(r); err != nil {
			return fmt.Errorf("range table: measurement %s: %w", name, err)
		}
	}

	b := t.HeightBands
	if !(0 < b.NoWallBelow && b.NoWallBelow < b.BasicMax && b.BasicMax < b.EnhancedMax && b.EnhancedMax < b.Maximum) {
		return errors.New("range table: height bands must be positive and strictly increasing")
	}
	if b.EnhancedMultiplier < 1 {
		return errors.New("range table: enhanced_multiplier must be at least 1")
	}

	if len(t.Capacity) == 0 {
		return errors.New("range table: capacity is empty")
	}
	seen := make(map[int]struct{}, len(t.Capacity))
	for _, c := range t.Capacity {
		if c.HeightMM <= 0 || c.AreaPerUser <= 0 {
			return fmt.Errorf("range table: capacity %dmm: height and area_per_user must be positive", c.HeightMM)
		}
		if _, ok := seen[c.HeightMM]; ok {
			return fmt.Errorf("range table: duplicate capacity height: %dmm", c.HeightMM)
		}
		seen[c.HeightMM] = struct{}{}
	}
	return nil
}

func validateRange(r Range) error {
	switch r.Type {
	case Decimal, Integer:
	default:
		return fmt.Errorf("unknown type %q", r.Type)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("min %g exceeds max %g", *r.Min, *r.Max)
	}
	if r.Type == Integer && (r.Max == nil || *r.Max > maxIntegerValue) {
		return fmt.Errorf("integer range needs a max of at most %d", maxIntegerValue)
	}
	return nil
}

// Limit returns the named compliance limit.
func (t *Table) Limit(name string) (Range, bool) {
	r, ok := t.Limits[name]
	return r, ok
}

// Within reports whether v satisfies the named limit. A nil value or an
// unknown limit is never within.
func (t *Table) Within(name string, v *float64) bool {
	if v == nil {
		return false
	}
	r, ok := t.Limits[name]
	if !ok {
		return false
	}
	return r.Contains(*v)
}

// Threshold returns the named strict threshold.
func (t *Table) Threshold(name string) (float64, bool) {
	v, ok := t.Thresholds[name]
	return v, ok
}

// Measurement returns the accepted storage range for a measurement field.
func (t *Table) Measurement(name string) (Range, bool) {
	r, ok := t.Measurements[name]
	return r, ok
}
