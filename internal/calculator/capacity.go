package calculator

import (
	"fmt"
	"math"

	"inflatable-compliance/internal/standard"
)

// Capacity is the maximum number of users per height category.
type Capacity struct {
	Users1000mm int `json:"users_1000mm"`
	Users1200mm int `json:"users_1200mm"`
	Users1500mm int `json:"users_1500mm"`
	Users1800mm int `json:"users_1800mm"`
}

// Max is the largest count across the categories.
func (c Capacity) Max() int {
	return max(c.Users1000mm, c.Users1200mm, c.Users1500mm, c.Users1800mm)
}

func (c *Capacity) set(heightMM, users int) {
	switch heightMM {
	case 1000:
		c.Users1000mm = users
	case 1200:
		c.Users1200mm = users
	case 1500:
		c.Users1500mm = users
	case 1800:
		c.Users1800mm = users
	}
}

// UserCapacity divides the usable play area by the area each height category
// needs. Categories taller than maxUserHeight, when given, get no users.
func UserCapacity(length, width, negativeAdjustment float64, maxUserHeight *float64) Result[Capacity] {
	var r Result[Capacity]

	total := length * width
	usable := math.Max(total-negativeAdjustment, 0)
	if math.IsNaN(usable) {
		usable = 0
	}
	r.step("Total area", fmt.Sprintf("%sm × %sm = %sm²", num(length), num(width), num(total)))
	if negativeAdjustment != 0 {
		r.step("Obstacles/adjustments", fmt.Sprintf("- %sm²", num(negativeAdjustment)))
	}
	r.step("Usable area", fmt.Sprintf("%sm²", num(usable)))

	for _, band := range standard.Default().Capacity {
		label := fmt.Sprintf("%dmm users", band.HeightMM)
		if maxUserHeight != nil && band.HeightM() > *maxUserHeight {
			r.Value.set(band.HeightMM, 0)
			r.step(label, fmt.Sprintf("not allowed (max user height %sm)", num(*maxUserHeight)))
			continue
		}
		users := count(math.Floor(usable / band.AreaPerUser))
		r.Value.set(band.HeightMM, users)
		r.step(label, fmt.Sprintf("%sm² ÷ %sm² = %d", num(usable), num(band.AreaPerUser), users))
	}
	return r
}
