package nutrition

// Conversion is the result of scaling a Reference to a ServingSpec.
type Conversion struct {
	Profile     Profile `json:"profile"`
	Factor      float64 `json:"factor"`
	ServingText string  `json:"serving_text"`
	Basis       string  `json:"basis"`
	Degraded    bool    `json:"degraded"`
}

// Convert scales ref to spec. It always starts from the reference, so
// switching units back and forth never compounds rounding. Only the returned
// profile is rounded.
//
// A per-100 g reference without a cup weight is returned unscaled with the
// "per 100g" description whatever the requested serving.
func Convert(ref Reference, spec ServingSpec) Conversion {
	if ref.Degraded() {
		return Conversion{
			Profile:     ref.Profile.Rounded(),
			Factor:      1,
			ServingText: "per 100g",
			Basis:       "per 100g",
			Degraded:    true,
		}
	}
	factor := spec.Factor()
	return Conversion{
		Profile:     ref.PerCup().Scale(factor).Rounded(),
		Factor:      factor,
		ServingText: spec.Describe(),
		Basis:       ref.Describe(),
	}
}
