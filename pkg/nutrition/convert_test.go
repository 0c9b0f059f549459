package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cupWeight(g float64) *float64 { return &g }

func TestConvert_ButterTablespoons(t *testing.T) {
	butter := Reference{
		Profile: Profile{Calories: 840, Protein: 12, Fat: 88},
		Basis:   BasisCup,
	}

	got := Convert(butter, ServingSpec{Quantity: 2, Unit: UnitTbsp})

	assert.Equal(t, 0.125, got.Factor)
	assert.Equal(t, Profile{Calories: 105, Protein: 1.5, Fat: 11}, got.Profile)
	assert.Equal(t, "2 tbsp", got.ServingText)
	assert.Equal(t, "per 1 cup", got.Basis)
	assert.False(t, got.Degraded)
}

func TestConvert_Per100gWithoutCupWeightIsIdentity(t *testing.T) {
	ref := Reference{
		Profile: Profile{Calories: 52.4, Protein: 0.26, Carbs: 13.81, Fiber: 2.4, Water: 85.56},
		Basis:   Basis100Gram,
	}

	specs := []ServingSpec{
		{Quantity: 1, Unit: UnitCup},
		{Quantity: 3, Unit: UnitTsp},
		{Quantity: 4, Unit: UnitEach},
		{Quantity: 2, Unit: UnitPackage},
	}
	for _, spec := range specs {
		got := Convert(ref, spec)
		assert.True(t, got.Degraded)
		assert.Equal(t, "per 100g", got.ServingText)
		assert.Equal(t, "per 100g", got.Basis)
		assert.Equal(t, 1.0, got.Factor)
		assert.Equal(t, ref.Profile.Rounded(), got.Profile)
	}
}

func TestConvert_Per100gWithCupWeight(t *testing.T) {
	ref := Reference{
		Profile:       Profile{Calories: 52, Protein: 0.4, Carbs: 13.6, Fiber: 2.4, Water: 85.6},
		Basis:         Basis100Gram,
		CupGramWeight: cupWeight(125),
	}

	got := Convert(ref, ServingSpec{Quantity: 1, Unit: UnitCup})

	assert.False(t, got.Degraded)
	assert.Equal(t, "per 1 cup (125 g)", got.Basis)
	assert.Equal(t, Profile{Calories: 65, Protein: 0.5, Carbs: 17, Fiber: 3, Water: 107}, got.Profile)
}

func TestConvert_CountUnits(t *testing.T) {
	ref := Reference{Profile: Profile{Calories: 70, Protein: 6, Fat: 5}, Basis: BasisCup}

	each := Convert(ref, ServingSpec{Quantity: 3, Unit: UnitEach})
	assert.Equal(t, 3.0, each.Factor)
	assert.Equal(t, "3", each.ServingText)
	assert.Equal(t, Profile{Calories: 210, Protein: 18, Fat: 15}, each.Profile)

	pkgs := Convert(ref, ServingSpec{Quantity: 2, Unit: UnitPackage})
	assert.Equal(t, "2 packages", pkgs.ServingText)

	one := Convert(ref, ServingSpec{Quantity: 1, Unit: UnitPackage})
	assert.Equal(t, "1 package", one.ServingText)
}

func TestConvert_UnitSwitchingDoesNotDrift(t *testing.T) {
	ref := Reference{
		Profile:       Profile{Calories: 389, Protein: 16.89, Carbs: 66.27, Fat: 6.9, Fiber: 10.6, Water: 8.22},
		Basis:         Basis100Gram,
		CupGramWeight: cupWeight(81),
	}

	direct := Convert(ref, ServingSpec{Quantity: 1, Unit: UnitCup})
	_ = Convert(ref, ServingSpec{Quantity: 16, Unit: UnitTbsp})
	_ = Convert(ref, ServingSpec{Quantity: 48, Unit: UnitTsp})
	back := Convert(ref, ServingSpec{Quantity: 1, Unit: UnitCup})

	assert.Equal(t, direct, back)

	tbsp := Convert(ref, ServingSpec{Quantity: 16, Unit: UnitTbsp})
	assert.Equal(t, direct.Profile, tbsp.Profile)
}

func TestConvert_ZeroQuantity(t *testing.T) {
	ref := Reference{Profile: Profile{Calories: 100, Protein: 2}, Basis: BasisCup}
	got := Convert(ref, ServingSpec{Quantity: 0, Unit: UnitCup})
	assert.True(t, got.Profile.IsZero())
}

func TestResolveCupGramWeight(t *testing.T) {
	tests := []struct {
		name     string
		portions []Portion
		want     float64
		found    bool
	}{
		{
			name: "skips undrained",
			portions: []Portion{
				{Unit: "cup, sliced", GramWeight: 150, Amount: 1},
				{Unit: "cup, undrained", GramWeight: 200, Amount: 1},
			},
			want:  150,
			found: true,
		},
		{
			name: "undrained listed first",
			portions: []Portion{
				{Unit: "cup, undrained", GramWeight: 200, Amount: 1},
				{Unit: "Cup", GramWeight: 240, Amount: 1},
			},
			want:  240,
			found: true,
		},
		{
			name: "half cup normalised",
			portions: []Portion{
				{Unit: "cup, chopped", GramWeight: 75, Amount: 0.5},
			},
			want:  150,
			found: true,
		},
		{
			name: "cup-like words do not match",
			portions: []Portion{
				{Unit: "cupcake", GramWeight: 60, Amount: 1},
				{Unit: "tbsp", GramWeight: 14, Amount: 1},
			},
		},
		{name: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveCupGramWeight(tt.portions)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
