package lineitem

import (
	"context"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const butterID = "4f6b8f2e-3c1d-4e5a-9b7c-2d1e0f9a8b7c"

type finderFunc func(ctx context.Context, id string, userID string) (domain.ReferenceResult, error)

func (f finderFunc) FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error) {
	return f(ctx, id, userID)
}

func butterFinder() ReferenceFinder {
	return finderFunc(func(_ context.Context, id string, _ string) (domain.ReferenceResult, error) {
		if id != butterID {
			return domain.ReferenceResult{}, domain.ErrFoodNotFound
		}
		return domain.ReferenceResult{
			Name: "Butter",
			Reference: nutrition.Reference{
				Profile: nutrition.Profile{Calories: 840, Protein: 12, Fat: 88},
				Basis:   nutrition.BasisCup,
			},
		}, nil
	})
}

func TestResolve(t *testing.T) {
	r := NewResolver(butterFinder(), nil)
	ctx := context.Background()

	t.Run("food reference", func(t *testing.T) {
		got, err := r.Resolve(ctx, domain.LineItemRequest{
			Kind: entities.ItemKindFood, SourceID: butterID, Quantity: 2, Unit: "tbsp",
		}, "user")
		require.NoError(t, err)
		assert.Equal(t, "Butter", got.Name)
		assert.Equal(t, "2 tbsp", got.ServingText)
		assert.Equal(t, nutrition.Profile{Calories: 105, Protein: 1.5, Fat: 11}, got.Nutrients)
		require.NotNil(t, got.SourceID)
		assert.Equal(t, butterID, got.SourceID.String())
	})

	t.Run("name override", func(t *testing.T) {
		got, err := r.Resolve(ctx, domain.LineItemRequest{
			Kind: entities.ItemKindFood, SourceID: butterID, Name: " Salted butter ", Quantity: 1, Unit: "cup",
		}, "user")
		require.NoError(t, err)
		assert.Equal(t, "Salted butter", got.Name)
	})

	t.Run("finder errors pass through", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.LineItemRequest{
			Kind: entities.ItemKindFood, SourceID: "0b8c7a5e-7f3e-4f0a-9d4c-8a1b2c3d4e5f", Quantity: 1, Unit: "cup",
		}, "user")
		assert.ErrorIs(t, err, domain.ErrFoodNotFound)
	})

	t.Run("disabled kind", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.LineItemRequest{
			Kind: entities.ItemKindRecipe, SourceID: butterID, Quantity: 1, Unit: "cup",
		}, "user")
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})

	t.Run("custom", func(t *testing.T) {
		got, err := r.Resolve(ctx, domain.LineItemRequest{
			Kind: entities.ItemKindCustom, Name: "Toast", Quantity: 2, Unit: "each",
			Nutrients: &domain.NutrientsRequest{Calories: 240, Carbs: 44},
		}, "user")
		require.NoError(t, err)
		assert.Nil(t, got.SourceID)
		assert.Equal(t, "2", got.ServingText)
		assert.Equal(t, nutrition.Profile{Calories: 240, Carbs: 44}, got.Nutrients)
	})

	t.Run("custom without nutrients", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.LineItemRequest{Kind: entities.ItemKindCustom, Name: "Toast"}, "user")
		assert.ErrorIs(t, err, domain.ErrNutrientsRequired)
	})

	t.Run("note", func(t *testing.T) {
		got, err := r.Resolve(ctx, domain.LineItemRequest{Kind: entities.ItemKindNote, Name: "ate late"}, "user")
		require.NoError(t, err)
		assert.Equal(t, entities.ItemKindNote, got.Kind)
		assert.Equal(t, nutrition.Profile{}, got.Nutrients)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.LineItemRequest{Kind: "snack"}, "user")
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})
}

func TestServing(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		unit     string
		err      error
	}{
		{"valid", 1.5, "cup", nil},
		{"alias", 2, "Tablespoon", nil},
		{"zero quantity", 0, "cup", domain.ErrInvalidQuantity},
		{"negative quantity", -1, "cup", domain.ErrInvalidQuantity},
		{"unknown unit", 1, "gallon", domain.ErrInvalidUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Serving(tt.quantity, tt.unit)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
