package goal

import "math"

type Classification string

const (
	OnTarget   Classification = "on-target"
	NearTarget Classification = "near-target"
	OffTarget  Classification = "off-target"
)

type Nutrient string

const (
	NutrientCalories    Nutrient = "calories"
	NutrientProtein     Nutrient = "protein"
	NutrientCarbs       Nutrient = "carbs"
	NutrientFat         Nutrient = "fat"
	NutrientFiber       Nutrient = "fiber"
	NutrientWaterIntake Nutrient = "water_intake"
)

// Nutrients lists the goal report rows in display order.
var Nutrients = []Nutrient{
	NutrientCalories,
	NutrientProtein,
	NutrientCarbs,
	NutrientFat,
	NutrientFiber,
	NutrientWaterIntake,
}

type Status struct {
	Percentage     int            `json:"percentage"`
	Classification Classification `json:"classification"`
}

// Compare computes the percentage of goal reached and its band.
// A zero goal yields 0%.
func Compare(actual, goal float64) Status {
	pct := 0
	if goal != 0 {
		pct = int(math.Round(actual / goal * 100))
	}
	return Status{Percentage: pct, Classification: classify(pct)}
}

func classify(pct int) Classification {
	switch {
	case pct >= 95 && pct <= 105:
		return OnTarget
	case pct >= 85 && pct <= 115:
		return NearTarget
	default:
		return OffTarget
	}
}

// IsOver flags an actual value above its goal. More water is never flagged.
func IsOver(n Nutrient, actual, goal float64) bool {
	if n == NutrientWaterIntake {
		return false
	}
	return actual > goal
}

// ProgressFraction is the filled share of a progress bar, capped at 1.
func ProgressFraction(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(actual/goal, 1)
}
