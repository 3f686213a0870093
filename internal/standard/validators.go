package standard

// Validators return false for a nil measurement: absence is never compliance.

// ValidStitchLength reports whether a stitch length in mm is within limits.
func ValidStitchLength(mm *float64) bool {
	return defaultTable.Within(LimitStitchLength, mm)
}

// ValidPressure reports whether an operating pressure in kPa is sufficient.
func ValidPressure(kpa *float64) bool {
	return defaultTable.Within(LimitUnitPressure, kpa)
}

// ValidFallHeight reports whether a critical fall-off height in m is acceptable.
func ValidFallHeight(m *float64) bool {
	return defaultTable.Within(LimitFallHeight, m)
}

// ValidRopeDiameter reports whether a rope diameter in mm is within limits.
func ValidRopeDiameter(mm *float64) bool {
	return defaultTable.Within(LimitRopeDiameter, mm)
}

// RequiresPermanentRoof reports whether a user height in m is above the
// enhanced wall band, where a permanent roof becomes mandatory.
func RequiresPermanentRoof(m *float64) bool {
	if m == nil {
		return false
	}
	return *m > defaultTable.HeightBands.EnhancedMax
}

// RequiresMultipleExits reports whether a user count needs more than one exit.
func RequiresMultipleExits(users *int) bool {
	if users == nil {
		return false
	}
	return float64(*users) > defaultTable.Thresholds[ThresholdExitsUsers]
}

// RequiredExits is the exit count a totally enclosed unit needs for users.
func RequiredExits(users *int) int {
	if RequiresMultipleExits(users) {
		return MultipleExits
	}
	return MinimumExits
}
