package assessment

import (
	"fmt"
	"strings"

	"inflatable-compliance/internal/calculator"
	"inflatable-compliance/internal/standard"
)

// Compliance is a derived verdict with a display string.
type Compliance struct {
	Compliant bool   `json:"compliant"`
	Status    string `json:"status"`
}

const (
	StatusCompliant  = "Compliant"
	StatusIncomplete = "Incomplete"
)

var incomplete = Compliance{Status: StatusIncomplete}

func compliant() Compliance { return Compliance{Compliant: true, Status: StatusCompliant} }

func nonCompliant(format string, args ...any) Compliance {
	return Compliance{Status: "Non-compliant: " + fmt.Sprintf(format, args...)}
}

// ---------------------------------------------------------------------------
// Anchorage
// ---------------------------------------------------------------------------

// TotalAnchors is low plus high anchors, or nil until both are recorded.
func (a *Assessment) TotalAnchors() *int {
	low := a.IntMeasurement("num_low_anchors")
	high := a.IntMeasurement("num_high_anchors")
	if low == nil || high == nil {
		return nil
	}
	total := *low + *high
	return &total
}

// RequiredAnchors is the anchor count the unit geometry calls for.
func (a *Assessment) RequiredAnchors(g calculator.Geometry) int {
	return calculator.RequiredAnchorsFor(g).Value
}

// AnchorCompliance compares the recorded anchors with the geometry's requirement.
func (a *Assessment) AnchorCompliance(g calculator.Geometry) Compliance {
	total := a.TotalAnchors()
	required := a.RequiredAnchors(g)
	if total == nil || required == 0 {
		return incomplete
	}
	if *total < required {
		return nonCompliant("requires %d anchors, has %d", required, *total)
	}
	return compliant()
}

// MeetsAnchorRequirements is AnchorCompliance(g).Compliant.
func (a *Assessment) MeetsAnchorRequirements(g calculator.Geometry) bool {
	return a.AnchorCompliance(g).Compliant
}

// ---------------------------------------------------------------------------
// Slide
// ---------------------------------------------------------------------------

// RequiredRunout is the runout the slide platform height calls for, 0 when
// the platform height is not recorded.
func (a *Assessment) RequiredRunout() float64 {
	h := a.Measurement("slide_platform_height")
	if h == nil {
		return 0
	}
	return calculator.RequiredRunout(*h, a.Flag("slide_stop_wall"))
}

// RunoutCompliance compares the measured runout with the requirement.
func (a *Assessment) RunoutCompliance() Compliance {
	runout := a.Measurement("runout")
	required := a.RequiredRunout()
	if runout == nil || required == 0 {
		return incomplete
	}
	if *runout < required {
		return nonCompliant("requires %gm runout, has %gm", required, *runout)
	}
	return compliant()
}

// MeetsRunoutRequirements is RunoutCompliance().Compliant.
func (a *Assessment) MeetsRunoutRequirements() bool {
	return a.RunoutCompliance().Compliant
}

// WallHeightCompliance checks the slide walls against the platform height.
func (a *Assessment) WallHeightCompliance() Compliance {
	return heightCompliance(
		a.Measurement("slide_platform_height"),
		a.Measurement("slide_wall_height"),
		a.Flag("slide_permanent_roof"),
	)
}

// MeetsWallHeightRequirements is WallHeightCompliance().Compliant.
func (a *Assessment) MeetsWallHeightRequirements() bool {
	return a.WallHeightCompliance().Compliant
}

// ---------------------------------------------------------------------------
// User height
// ---------------------------------------------------------------------------

// HeightCompliance checks the containing walls against the tallest user.
func (a *Assessment) HeightCompliance() Compliance {
	return heightCompliance(
		a.Measurement("tallest_user_height"),
		a.Measurement("containing_wall_height"),
		a.Flag("permanent_roof"),
	)
}

// MeetsHeightRequirements is HeightCompliance().Compliant.
func (a *Assessment) MeetsHeightRequirements() bool {
	return a.HeightCompliance().Compliant
}

// CalculatedCapacity derives user capacity from the recorded play area.
// It reports false until length and width are recorded.
func (a *Assessment) CalculatedCapacity() (calculator.Result[calculator.Capacity], bool) {
	length := a.Measurement("play_area_length")
	width := a.Measurement("play_area_width")
	if length == nil || width == nil {
		return calculator.Result[calculator.Capacity]{}, false
	}
	var adjustment float64
	if adj := a.Measurement("negative_adjustment"); adj != nil {
		adjustment = *adj
	}
	return calculator.UserCapacity(*length, *width, adjustment, a.Measurement("tallest_user_height")), true
}

// CapacityCompliance checks the recorded user counts do not exceed the
// capacity of the play area.
func (a *Assessment) CapacityCompliance() Compliance {
	calc, ok := a.CalculatedCapacity()
	if !ok {
		return incomplete
	}
	limits := []struct {
		field Field
		label string
		max   int
	}{
		{"users_at_1000mm", "1000mm", calc.Value.Users1000mm},
		{"users_at_1200mm", "1200mm", calc.Value.Users1200mm},
		{"users_at_1500mm", "1500mm", calc.Value.Users1500mm},
		{"users_at_1800mm", "1800mm", calc.Value.Users1800mm},
	}
	var over []string
	for _, l := range limits {
		n := a.IntMeasurement(l.field)
		if n == nil {
			return incomplete
		}
		if *n > l.max {
			over = append(over, fmt.Sprintf("%s users %d exceeds %d", l.label, *n, l.max))
		}
	}
	if len(over) > 0 {
		return nonCompliant("%s", strings.Join(over, ", "))
	}
	return compliant()
}

// MaxUsers is the largest recorded user count across height categories.
func (a *Assessment) MaxUsers() *int {
	var best *int
	for _, f := range []Field{"users_at_1000mm", "users_at_1200mm", "users_at_1500mm", "users_at_1800mm"} {
		if n := a.IntMeasurement(f); n != nil && (best == nil || *n > *best) {
			best = n
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Structure and materials
// ---------------------------------------------------------------------------

// MeasurementCompliance checks stitch length, unit pressure, and critical
// fall-off height against the standard limits.
func (a *Assessment) MeasurementCompliance() Compliance {
	checks := []struct {
		field Field
		valid func(*float64) bool
	}{
		{"stitch_length", standard.ValidStitchLength},
		{"unit_pressure", standard.ValidPressure},
		{"critical_fall_off_height", standard.ValidFallHeight},
	}
	var failed []string
	for _, c := range checks {
		v := a.Measurement(c.field)
		if v == nil {
			return incomplete
		}
		if !c.valid(v) {
			failed = append(failed, FieldLabel(c.field))
		}
	}
	if len(failed) > 0 {
		return nonCompliant("%s", strings.Join(failed, ", "))
	}
	return compliant()
}

// RopeCompliance checks the rope diameter.
func (a *Assessment) RopeCompliance() Compliance {
	v := a.Measurement("ropes")
	if v == nil {
		return incomplete
	}
	if !standard.ValidRopeDiameter(v) {
		r, _ := standard.Default().Limit(standard.LimitRopeDiameter)
		return nonCompliant("rope diameter %gmm outside %s", *v, r)
	}
	return compliant()
}

// ---------------------------------------------------------------------------
// Enclosed
// ---------------------------------------------------------------------------

// RequiredExits is the exit count needed for the given number of users.
func (a *Assessment) RequiredExits(users *int) int {
	return standard.RequiredExits(users)
}

// ExitCompliance compares the recorded exits with the requirement for users.
func (a *Assessment) ExitCompliance(users *int) Compliance {
	exits := a.IntMeasurement("exit_number")
	if exits == nil {
		return incomplete
	}
	required := a.RequiredExits(users)
	if *exits < required {
		return nonCompliant("requires %d exits, has %d", required, *exits)
	}
	return compliant()
}

func heightCompliance(user, wall *float64, roof bool) Compliance {
	if user == nil || wall == nil {
		return incomplete
	}
	if calculator.MeetsHeightRequirements(user, wall, roof) {
		return compliant()
	}
	band := calculator.HeightBandFor(*user)
	switch band {
	case calculator.BandExceeded:
		return nonCompliant("user height %gm exceeds the permitted maximum", *user)
	case calculator.BandMaximum:
		if !roof {
			return nonCompliant("permanent roof required above %gm", standard.Default().HeightBands.EnhancedMax)
		}
	}
	required := calculator.RequiredWallHeight(*user).Value
	return nonCompliant("requires %gm walls, has %gm", required, *wall)
}
