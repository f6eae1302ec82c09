// Package allowance holds the weekly point cap and the age-based allowance
// rate rules. All functions are pure; the chore service applies them inside
// its transactions.
package allowance

import "github.com/perryvale/hearth/internal/model"

// WeeklyCap is the maximum points counted toward a member's weekly progress,
// shared across all members. Points earned beyond it stay on the record but
// never count.
const WeeklyCap = 30

// Per-point dollar rates for the fixed-rate categories. The teenager rate is
// not fixed: it equals the member's current age in dollars per point, an
// intentional asymmetry of the age-based incentive design. Adults never
// accrue allowance.
const (
	childRate   = 0.25
	preteenRate = 0.50
)

// Capped applies the weekly cap to a raw confirmed-point sum.
func Capped(pointsEarned int) int {
	return min(pointsEarned, WeeklyCap)
}

// Remaining returns how many points still count this week.
func Remaining(pointsCapped int) int {
	return max(0, WeeklyCap-pointsCapped)
}

// IsAtCap reports whether the member has reached the weekly cap.
func IsAtCap(pointsCapped int) bool {
	return pointsCapped >= WeeklyCap
}

// Rate returns the dollars-per-point rate for a member of the given category
// and age.
func Rate(category model.AgeCategory, age int) float64 {
	switch category {
	case model.AgeChild:
		return childRate
	case model.AgePreteen:
		return preteenRate
	case model.AgeTeenager:
		return float64(age)
	default: // adult
		return 0
	}
}

// Amount computes the monthly allowance from total earned points.
func Amount(totalPointsEarned int, category model.AgeCategory, age int) float64 {
	return float64(totalPointsEarned) * Rate(category, age)
}
