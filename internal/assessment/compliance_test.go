package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inflatable-compliance/internal/calculator"
)

func set(t *testing.T, a *Assessment, values map[Field]float64) {
	t.Helper()
	for f, v := range values {
		require.NoError(t, a.SetMeasurement(f, v))
	}
}

func TestAnchorCompliance(t *testing.T) {
	g := calculator.Geometry{Length: 5, Width: 4, Height: 3}
	a := newAssessment(t, Anchorage)

	assert.Nil(t, a.TotalAnchors())
	assert.Equal(t, 8, a.RequiredAnchors(g))
	assert.Equal(t, Compliance{Status: StatusIncomplete}, a.AnchorCompliance(g))

	set(t, a, map[Field]float64{"num_low_anchors": 3, "num_high_anchors": 4})
	assert.Equal(t, 7, *a.TotalAnchors())
	assert.False(t, a.MeetsAnchorRequirements(g))
	assert.Equal(t, "Non-compliant: requires 8 anchors, has 7", a.AnchorCompliance(g).Status)

	set(t, a, map[Field]float64{"num_low_anchors": 4})
	assert.True(t, a.MeetsAnchorRequirements(g))
	assert.Equal(t, StatusCompliant, a.AnchorCompliance(g).Status)
}

func TestAnchorComplianceWithoutGeometry(t *testing.T) {
	a := newAssessment(t, Anchorage)
	set(t, a, map[Field]float64{"num_low_anchors": 4, "num_high_anchors": 4})

	assert.Equal(t, StatusIncomplete, a.AnchorCompliance(calculator.Geometry{}).Status)
}

func TestDerivedValuesFollowWrites(t *testing.T) {
	a := newAssessment(t, Slide)
	set(t, a, map[Field]float64{"slide_platform_height": 2.0})
	assert.Equal(t, 1.0, a.RequiredRunout())
	assert.Equal(t, a.RequiredRunout(), a.RequiredRunout())

	require.NoError(t, a.SetFlag("slide_stop_wall", true))
	assert.Equal(t, 1.5, a.RequiredRunout())

	require.NoError(t, a.ClearMeasurement("slide_platform_height"))
	assert.Equal(t, 0.0, a.RequiredRunout())
}

func TestRunoutCompliance(t *testing.T) {
	a := newAssessment(t, Slide)
	assert.Equal(t, StatusIncomplete, a.RunoutCompliance().Status)

	set(t, a, map[Field]float64{"slide_platform_height": 2.0, "runout": 0.8})
	assert.False(t, a.MeetsRunoutRequirements())
	assert.Equal(t, "Non-compliant: requires 1m runout, has 0.8m", a.RunoutCompliance().Status)

	set(t, a, map[Field]float64{"runout": 1.2})
	assert.True(t, a.MeetsRunoutRequirements())
}

func TestSlideWallHeightCompliance(t *testing.T) {
	tests := []struct {
		name     string
		platform float64
		wall     float64
		roof     bool
		want     string
	}{
		{name: "basic band", platform: 2.0, wall: 2.0, want: StatusCompliant},
		{name: "basic band short", platform: 2.0, wall: 1.5, want: "Non-compliant: requires 2m walls, has 1.5m"},
		{name: "enhanced band", platform: 4.0, wall: 5.0, want: StatusCompliant},
		{name: "enhanced band short", platform: 4.0, wall: 4.8, want: "Non-compliant: requires 5m walls, has 4.8m"},
		{name: "enhanced band with roof", platform: 4.0, wall: 4.0, roof: true, want: StatusCompliant},
		{name: "maximum band without roof", platform: 7.0, wall: 9.0, want: "Non-compliant: permanent roof required above 6m"},
		{name: "maximum band with roof", platform: 7.0, wall: 9.0, roof: true, want: StatusCompliant},
		{name: "above maximum", platform: 9.0, wall: 12.0, roof: true, want: "Non-compliant: user height 9m exceeds the permitted maximum"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newAssessment(t, Slide)
			set(t, a, map[Field]float64{"slide_platform_height": tc.platform, "slide_wall_height": tc.wall})
			require.NoError(t, a.SetFlag("slide_permanent_roof", tc.roof))

			assert.Equal(t, tc.want, a.WallHeightCompliance().Status)
			assert.Equal(t, tc.want == StatusCompliant, a.MeetsWallHeightRequirements())
		})
	}
}

func TestHeightCompliance(t *testing.T) {
	a := newAssessment(t, UserHeight)
	assert.Equal(t, StatusIncomplete, a.HeightCompliance().Status)

	set(t, a, map[Field]float64{"tallest_user_height": 1.5})
	assert.False(t, a.MeetsHeightRequirements())

	set(t, a, map[Field]float64{"containing_wall_height": 1.8})
	assert.True(t, a.MeetsHeightRequirements())
}

func TestCalculatedCapacity(t *testing.T) {
	a := newAssessment(t, UserHeight)
	_, ok := a.CalculatedCapacity()
	assert.False(t, ok)

	set(t, a, map[Field]float64{"play_area_length": 5, "play_area_width": 4})
	res, ok := a.CalculatedCapacity()
	require.True(t, ok)
	assert.Equal(t, calculator.Capacity{
		Users1000mm: 20, Users1200mm: 15, Users1500mm: 12, Users1800mm: 10,
	}, res.Value)

	set(t, a, map[Field]float64{"tallest_user_height": 1.5, "negative_adjustment": 4})
	res, ok = a.CalculatedCapacity()
	require.True(t, ok)
	assert.Equal(t, calculator.Capacity{
		Users1000mm: 16, Users1200mm: 12, Users1500mm: 9, Users1800mm: 0,
	}, res.Value)
}

func TestCapacityCompliance(t *testing.T) {
	a := newAssessment(t, UserHeight)
	set(t, a, map[Field]float64{
		"play_area_length": 5, "play_area_width": 4,
		"users_at_1000mm": 20, "users_at_1200mm": 15, "users_at_1500mm": 12,
	})
	assert.Equal(t, StatusIncomplete, a.CapacityCompliance().Status)

	set(t, a, map[Field]float64{"users_at_1800mm": 10})
	assert.True(t, a.CapacityCompliance().Compliant)
	assert.Equal(t, 20, *a.MaxUsers())

	set(t, a, map[Field]float64{"users_at_1500mm": 13})
	assert.Equal(t, "Non-compliant: 1500mm users 13 exceeds 12", a.CapacityCompliance().Status)
}

func TestMeasurementCompliance(t *testing.T) {
	a := newAssessment(t, Structure)
	set(t, a, map[Field]float64{"stitch_length": 5, "unit_pressure": 1.2})
	assert.Equal(t, StatusIncomplete, a.MeasurementCompliance().Status)

	set(t, a, map[Field]float64{"critical_fall_off_height": 0.5})
	assert.Equal(t, StatusCompliant, a.MeasurementCompliance().Status)

	set(t, a, map[Field]float64{"stitch_length": 2, "critical_fall_off_height": 0.9})
	assert.Equal(t, "Non-compliant: Stitch Length, Critical Fall-off Height", a.MeasurementCompliance().Status)
}

func TestRopeCompliance(t *testing.T) {
	a := newAssessment(t, Materials)
	assert.Equal(t, StatusIncomplete, a.RopeCompliance().Status)

	set(t, a, map[Field]float64{"ropes": 10})
	assert.Equal(t, "Non-compliant: rope diameter 10mm outside 18..45 mm", a.RopeCompliance().Status)

	set(t, a, map[Field]float64{"ropes": 24})
	assert.True(t, a.RopeCompliance().Compliant)
}

func TestExitCompliance(t *testing.T) {
	few, many := 10, 16
	a := newAssessment(t, Enclosed)

	assert.Equal(t, 1, a.RequiredExits(nil))
	assert.Equal(t, 1, a.RequiredExits(&few))
	assert.Equal(t, 2, a.RequiredExits(&many))
	assert.Equal(t, StatusIncomplete, a.ExitCompliance(&many).Status)

	set(t, a, map[Field]float64{"exit_number": 1})
	assert.True(t, a.ExitCompliance(&few).Compliant)
	assert.Equal(t, "Non-compliant: requires 2 exits, has 1", a.ExitCompliance(&many).Status)
}
