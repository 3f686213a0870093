package calculator

// AnchorsRequest is the JSON body for POST /calculator/anchors.
type AnchorsRequest struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RunoutRequest is the JSON body for POST /calculator/runout.
type RunoutRequest struct {
	PlatformHeight *float64 `json:"platform_height"` // absent means no requirement
	HasStopWall    bool     `json:"has_stop_wall"`
}

// WallHeightRequest is the JSON body for POST /calculator/wall-height.
type WallHeightRequest struct {
	UserHeight           float64  `json:"user_height"`
	ContainingWallHeight *float64 `json:"containing_wall_height"`
	HasPermanentRoof     bool     `json:"has_permanent_roof"`
}

// CapacityRequest is the JSON body for POST /calculator/user-capacity.
type CapacityRequest struct {
	Length             float64  `json:"length"`
	Width              float64  `json:"width"`
	NegativeAdjustment float64  `json:"negative_adjustment"`
	MaxUserHeight      *float64 `json:"max_user_height"`
}

// CalcResponse is the JSON response for the calculator endpoints.
type CalcResponse[T any] struct {
	Calculation string `json:"calculation"`
	Result[T]
	RequestID string `json:"request_id"`
}

// WallHeightResponse adds the compliance verdict when a wall height was given.
type WallHeightResponse struct {
	CalcResponse[float64]
	Band              HeightBand `json:"band"`
	RequiresRoof      bool       `json:"requires_permanent_roof"`
	MeetsRequirements *bool      `json:"meets_requirements,omitempty"`
}
