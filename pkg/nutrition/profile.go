package nutrition

import "math"

// Profile is the nutrient content of one serving of something. It is a value
// type: every operation returns a new Profile.
type Profile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Water    float64 `json:"water"`
}

// Scale multiplies every field by factor.
func (p Profile) Scale(factor float64) Profile {
	return Profile{
		Calories: p.Calories * factor,
		Protein:  p.Protein * factor,
		Carbs:    p.Carbs * factor,
		Fat:      p.Fat * factor,
		Fiber:    p.Fiber * factor,
		Water:    p.Water * factor,
	}
}

// Add returns the field-wise sum of p and o.
func (p Profile) Add(o Profile) Profile {
	return Profile{
		Calories: p.Calories + o.Calories,
		Protein:  p.Protein + o.Protein,
		Carbs:    p.Carbs + o.Carbs,
		Fat:      p.Fat + o.Fat,
		Fiber:    p.Fiber + o.Fiber,
		Water:    p.Water + o.Water,
	}
}

// Rounded applies the display rounding policy: calories to a whole number,
// everything else to one decimal place.
func (p Profile) Rounded() Profile {
	return Profile{
		Calories: math.Round(p.Calories),
		Protein:  RoundTenth(p.Protein),
		Carbs:    RoundTenth(p.Carbs),
		Fat:      RoundTenth(p.Fat),
		Fiber:    RoundTenth(p.Fiber),
		Water:    RoundTenth(p.Water),
	}
}

// IsZero reports whether every field is zero.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// RoundTenth rounds v to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
