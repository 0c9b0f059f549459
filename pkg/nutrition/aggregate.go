package nutrition

import "sort"

// Totals is the sum over a set of line items plus the directly entered water
// intake, which is not derived from items.
type Totals struct {
	Profile
	WaterIntake float64 `json:"water_intake"`
}

// Aggregate sums profiles field by field. No rounding is applied; the inputs
// are already rounded line item values.
//
// Each field is summed in sorted order so the result does not depend on the
// order the items were fetched in, floating point included.
func Aggregate(profiles ...Profile) Profile {
	n := len(profiles)
	if n == 0 {
		return Profile{}
	}
	fields := func(get func(Profile) float64) float64 {
		vals := make([]float64, n)
		for i, p := range profiles {
			vals[i] = get(p)
		}
		return sortedSum(vals)
	}
	return Profile{
		Calories: fields(func(p Profile) float64 { return p.Calories }),
		Protein:  fields(func(p Profile) float64 { return p.Protein }),
		Carbs:    fields(func(p Profile) float64 { return p.Carbs }),
		Fat:      fields(func(p Profile) float64 { return p.Fat }),
		Fiber:    fields(func(p Profile) float64 { return p.Fiber }),
		Water:    fields(func(p Profile) float64 { return p.Water }),
	}
}

// SumTotals adds several totals, water intake included.
func SumTotals(totals ...Totals) Totals {
	profiles := make([]Profile, len(totals))
	water := make([]float64, len(totals))
	for i, t := range totals {
		profiles[i] = t.Profile
		water[i] = t.WaterIntake
	}
	return Totals{Profile: Aggregate(profiles...), WaterIntake: sortedSum(water)}
}

func sortedSum(vals []float64) float64 {
	sort.Float64s(vals)
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum
}
