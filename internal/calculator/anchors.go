package calculator

import (
	"fmt"
	"math"

	"inflatable-compliance/internal/standard"
)

// RequiredAnchors is the anchor count for one exposed panel of the given
// area in m². Partial anchors round up. A non-positive or non-finite area, or
// one too large to count, yields 0.
func RequiredAnchors(area float64) int {
	if area <= 0 || math.IsNaN(area) {
		return 0
	}
	return count(math.Ceil(area * standard.AnchorWindLoad * standard.AnchorSafetyFactor / standard.AnchorCapacity))
}

// RequiredAnchorsForUnit sums the anchors for both pairs of opposite panels.
func RequiredAnchorsForUnit(length, width, height float64) Result[int] {
	var r Result[int]

	frontArea := width * height
	sideArea := length * height
	front := RequiredAnchors(frontArea)
	side := RequiredAnchors(sideArea)

	r.step("Front/back area", fmt.Sprintf("%sm (W) × %sm (H) = %sm²", num(width), num(height), num(frontArea)))
	r.step("Side area", fmt.Sprintf("%sm (L) × %sm (H) = %sm²", num(length), num(height), num(sideArea)))
	r.step("Front/back anchors", anchorExpression(frontArea, front))
	r.step("Side anchors", anchorExpression(sideArea, side))

	r.Value = (front + side) * 2
	r.step("Total anchors", fmt.Sprintf("(%d + %d) × 2 = %d", front, side, r.Value))
	return r
}

// RequiredAnchorsFor is RequiredAnchorsForUnit over a Geometry.
func RequiredAnchorsFor(g Geometry) Result[int] {
	return RequiredAnchorsForUnit(g.Length, g.Width, g.Height)
}

func anchorExpression(area float64, anchors int) string {
	return fmt.Sprintf("⌈(%sm² × %s × %s) ÷ %s⌉ = %d",
		num(area), num(standard.AnchorWindLoad), num(standard.AnchorSafetyFactor), num(standard.AnchorCapacity), anchors)
}
