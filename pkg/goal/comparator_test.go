package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		goal   float64
		pct    int
		class  Classification
	}{
		{name: "on target lower edge", actual: 190, goal: 200, pct: 95, class: OnTarget},
		{name: "near target", actual: 175, goal: 200, pct: 88, class: NearTarget},
		{name: "on target upper edge", actual: 210, goal: 200, pct: 105, class: OnTarget},
		{name: "near target above", actual: 230, goal: 200, pct: 115, class: NearTarget},
		{name: "off target above", actual: 232, goal: 200, pct: 116, class: OffTarget},
		{name: "near target lower edge", actual: 170, goal: 200, pct: 85, class: NearTarget},
		{name: "off target below", actual: 100, goal: 200, pct: 50, class: OffTarget},
		{name: "zero goal", actual: 100, goal: 0, pct: 0, class: OffTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.actual, tt.goal)
			assert.Equal(t, tt.pct, got.Percentage)
			assert.Equal(t, tt.class, got.Classification)
		})
	}
}

func TestIsOver(t *testing.T) {
	assert.True(t, IsOver(NutrientCalories, 2100, 2000))
	assert.False(t, IsOver(NutrientCalories, 2000, 2000))
	assert.False(t, IsOver(NutrientWaterIntake, 12, 8))
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, 0.5, ProgressFraction(50, 100))
	assert.Equal(t, 1.0, ProgressFraction(150, 100))
	assert.Equal(t, 0.0, ProgressFraction(50, 0))
}
