package standard

// Anchor formula coefficients:
// required = ceil(area * AnchorWindLoad * AnchorSafetyFactor / AnchorCapacity).
const (
	AnchorWindLoad     = 114.0  // N/m² design wind load
	AnchorSafetyFactor = 1.5
	AnchorCapacity     = 1600.0 // N per anchor
)

// Slide runout coefficients.
const (
	RunoutRatio      = 0.5 // fraction of platform height
	MinimumRunout    = 0.3 // m
	StopWallAddition = 0.5 // m
)

// Exit counts for totally enclosed units.
const (
	MinimumExits  = 1
	MultipleExits = 2
)
