package calculator

import (
	"fmt"
	"math"

	"inflatable-compliance/internal/standard"
)

// HeightBand classifies a user height against the containing wall rules.
type HeightBand string

const (
	BandNoWall   HeightBand = "no_wall"
	BandBasic    HeightBand = "basic_walls"
	BandEnhanced HeightBand = "enhanced_walls"
	BandMaximum  HeightBand = "maximum_range"
	BandExceeded HeightBand = "exceeds_maximum"
)

// HeightBandFor returns the band a user height in meters falls in. Band upper
// bounds are inclusive.
func HeightBandFor(userHeight float64) HeightBand {
	b := standard.Default().HeightBands
	switch {
	case userHeight < b.NoWallBelow:
		return BandNoWall
	case userHeight <= b.BasicMax:
		return BandBasic
	case userHeight <= b.EnhancedMax:
		return BandEnhanced
	case userHeight <= b.Maximum:
		return BandMaximum
	default:
		return BandExceeded
	}
}

// MeetsHeightRequirements reports whether a containing wall is adequate for
// the user height. Either height missing is never compliant.
func MeetsHeightRequirements(userHeight, containingWallHeight *float64, hasPermanentRoof bool) bool {
	if userHeight == nil || containingWallHeight == nil {
		return false
	}
	h, wall := *userHeight, *containingWallHeight
	if math.IsNaN(h) || math.IsNaN(wall) {
		return false
	}
	mult := standard.Default().HeightBands.EnhancedMultiplier

	switch HeightBandFor(h) {
	case BandNoWall:
		return true
	case BandBasic:
		return wall >= h
	case BandEnhanced:
		return hasPermanentRoof || wall >= h*mult
	case BandMaximum:
		return hasPermanentRoof && wall >= h*mult
	default:
		return false
	}
}

// RequiredWallHeight is the containing wall height in meters needed for a
// user height. Heights above the permitted maximum yield 0 with a breakdown
// stating the unit cannot comply.
func RequiredWallHeight(userHeight float64) Result[float64] {
	var r Result[float64]
	b := standard.Default().HeightBands

	switch HeightBandFor(userHeight) {
	case BandNoWall:
		r.step("Height range", fmt.Sprintf("%sm is below %sm", num(userHeight), num(b.NoWallBelow)))
		r.step("Requirement", "no containing walls required")
	case BandBasic:
		r.Value = userHeight
		r.step("Height range", fmt.Sprintf("%sm - %sm", num(b.NoWallBelow), num(b.BasicMax)))
		r.step("Requirement", fmt.Sprintf("walls at least user height: %sm", num(r.Value)))
	case BandEnhanced:
		r.Value = userHeight * b.EnhancedMultiplier
		r.step("Height range", fmt.Sprintf("%sm - %sm", num(b.BasicMax), num(b.EnhancedMax)))
		r.step("Requirement", fmt.Sprintf("%sm × %s = %sm", num(userHeight), num(b.EnhancedMultiplier), num(r.Value)))
		r.step("Alternative", "a permanent roof satisfies this requirement")
	case BandMaximum:
		r.Value = userHeight * b.EnhancedMultiplier
		r.step("Height range", fmt.Sprintf("%sm - %sm", num(b.EnhancedMax), num(b.Maximum)))
		r.step("Requirement", fmt.Sprintf("%sm × %s = %sm", num(userHeight), num(b.EnhancedMultiplier), num(r.Value)))
		r.step("Additional requirement", "a permanent roof is mandatory")
	default:
		r.step("Height range", fmt.Sprintf("%sm exceeds the %sm maximum", num(userHeight), num(b.Maximum)))
		r.step("Requirement", "user height not permitted")
	}
	return r
}
