package calculator

import (
	"fmt"
	"math"

	"inflatable-compliance/internal/standard"
)

// RequiredRunout is the landing distance in meters needed beyond a slide with
// the given platform height. A non-positive height yields 0.
func RequiredRunout(platformHeight float64, hasStopWall bool) float64 {
	return RequiredRunoutResult(platformHeight, hasStopWall).Value
}

// RequiredRunoutResult is RequiredRunout with its breakdown.
func RequiredRunoutResult(platformHeight float64, hasStopWall bool) Result[float64] {
	var r Result[float64]
	if platformHeight <= 0 || math.IsNaN(platformHeight) {
		r.step("Platform height", "no platform height, no runout requirement")
		return r
	}

	proportional := platformHeight * standard.RunoutRatio
	r.step("Proportional runout", fmt.Sprintf("%sm × %s = %sm", num(platformHeight), num(standard.RunoutRatio), num(proportional)))

	base := math.Max(proportional, standard.MinimumRunout)
	r.step("Minimum runout", fmt.Sprintf("max(%sm, %sm) = %sm", num(proportional), num(standard.MinimumRunout), num(base)))

	r.Value = base
	if hasStopWall {
		r.Value = base + standard.StopWallAddition
		r.step("Stop wall addition", fmt.Sprintf("%sm + %sm = %sm", num(base), num(standard.StopWallAddition), num(r.Value)))
	}
	return r
}
