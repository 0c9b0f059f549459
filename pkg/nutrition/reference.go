package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Basis is the serving size a reference profile is expressed per.
type Basis string

const (
	BasisCup     Basis = "cup"
	Basis100Gram Basis = "100g"
)

// Reference is a nutrient profile tagged with its basis. Foods sourced from an
// external database are stored per 100 g and may carry the grams one cup of
// the food weighs.
type Reference struct {
	Profile       Profile  `json:"profile"`
	Basis         Basis    `json:"basis"`
	CupGramWeight *float64 `json:"cup_gram_weight,omitempty"`
}

// Portion is a serving descriptor taken from external food metadata.
type Portion struct {
	Unit       string  `json:"unit"`
	GramWeight float64 `json:"gram_weight"`
	Amount     float64 `json:"amount"`
}

var cupLabel = regexp.MustCompile(`^cup(,\s*.+)?$`)

// ResolveCupGramWeight scans portions for the first cup-like label ("cup" or
// "cup, <preparation>") and returns the grams in one cup. Labels mentioning
// "undrained" never match.
func ResolveCupGramWeight(portions []Portion) (float64, bool) {
	for _, p := range portions {
		label := strings.ToLower(strings.TrimSpace(p.Unit))
		if strings.Contains(label, "undrained") || !cupLabel.MatchString(label) {
			continue
		}
		if p.GramWeight <= 0 {
			continue
		}
		amount := p.Amount
		if amount <= 0 {
			amount = 1
		}
		return p.GramWeight / amount, true
	}
	return 0, false
}

// Degraded reports whether the reference cannot be scaled to a serving: it is
// per 100 g and no cup weight is known.
func (r Reference) Degraded() bool {
	return r.Basis == Basis100Gram && !r.hasCupWeight()
}

func (r Reference) hasCupWeight() bool {
	return r.CupGramWeight != nil && *r.CupGramWeight > 0
}

// PerCup returns the unrounded per-cup profile. For a degraded reference the
// per-100 g profile is returned as is.
func (r Reference) PerCup() Profile {
	if r.Basis == Basis100Gram && r.hasCupWeight() {
		return r.Profile.Scale(*r.CupGramWeight / 100)
	}
	return r.Profile
}

// Describe renders the basis the converted values are relative to.
func (r Reference) Describe() string {
	switch {
	case r.Degraded():
		return "per 100g"
	case r.Basis == Basis100Gram:
		return fmt.Sprintf("per 1 cup (%d g)", int(math.Round(*r.CupGramWeight)))
	default:
		return "per 1 cup"
	}
}
