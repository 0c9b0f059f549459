package recipe

import (
	"context"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/nutrition"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	mu      sync.Mutex
	recipes map[string]*entities.Recipe
	items   map[string]entities.RecipeItem
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes: map[string]*entities.Recipe{},
		items:   map[string]entities.RecipeItem{},
	}
}

func (r *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *recipe
	cp.Items = nil
	r.recipes[recipe.ID.String()] = &cp
	return nil
}

func (r *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *recipe
	cp.Items = nil
	for _, it := range r.items {
		if it.RecipeID == recipe.ID {
			cp.Items = append(cp.Items, it)
		}
	}
	for i := 1; i < len(cp.Items); i++ {
		for j := i; j > 0 && cp.Items[j].Order < cp.Items[j-1].Order; j-- {
			cp.Items[j], cp.Items[j-1] = cp.Items[j-1], cp.Items[j]
		}
	}
	return &cp, nil
}

func (r *fakeRecipeRepository) GetRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	r.mu.Lock()
	ids := make([]string, 0, len(r.recipes))
	for id, recipe := range r.recipes {
		if recipe.UserID.String() == userID {
			ids = append(ids, id)
		}
	}
	r.mu.Unlock()
	for _, id := range ids {
		recipe, _ := r.GetRecipeByID(ctx, id)
		out = append(out, recipe)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.CreateRecipe(ctx, recipe)
}

func (r *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for itemID, it := range r.items {
		if it.RecipeID.String() == id {
			delete(r.items, itemID)
		}
	}
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepository) CreateRecipeItem(_ context.Context, item *entities.RecipeItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID.String()] = *item
	return nil
}

func (r *fakeRecipeRepository) DeleteRecipeItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeFoods map[string]domain.ReferenceResult

func (f fakeFoods) FindReference(_ context.Context, id string, _ string) (domain.ReferenceResult, error) {
	ref, ok := f[id]
	if !ok {
		return domain.ReferenceResult{}, domain.ErrFoodNotFound
	}
	return ref, nil
}

func TestRecipeService_PerCupReference(t *testing.T) {
	butterID := uuid.NewString()
	repo := newFakeRecipeRepository()
	svc := NewRecipeService(repo, fakeFoods{
		butterID: {Name: "Butter", Reference: nutrition.Reference{
			Profile: nutrition.Profile{Calories: 840, Protein: 12, Fat: 88},
			Basis:   nutrition.BasisCup,
		}},
	})
	ctx := context.Background()
	user := uuid.NewString()

	recipe, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Name: "Shortbread", YieldCups: 2}, user)
	require.NoError(t, err)

	_, err = svc.AddRecipeItem(ctx, recipe.ID, domain.LineItemRequest{
		Kind: "custom", Name: "flour and sugar", Nutrients: &domain.NutrientsRequest{Calories: 400, Carbs: 90},
	}, user)
	require.NoError(t, err)

	recipe, err = svc.AddRecipeItem(ctx, recipe.ID, domain.LineItemRequest{
		Kind: "food", SourceID: butterID, Quantity: 1, Unit: "cup",
	}, user)
	require.NoError(t, err)
	require.Len(t, recipe.Items, 2)
	assert.Equal(t, 0, recipe.Items[0].Order)
	assert.Equal(t, 1, recipe.Items[1].Order)
	assert.Equal(t, "Butter", recipe.Items[1].Name)
	assert.Equal(t, 1240.0, recipe.Totals.Calories)
	assert.Equal(t, nutrition.Profile{Calories: 620, Protein: 6, Carbs: 45, Fat: 44}, recipe.PerCup)

	conv, err := svc.Convert(ctx, recipe.ID, domain.ConvertRequest{Quantity: 4, Unit: "tbsp"}, user)
	require.NoError(t, err)
	assert.Equal(t, 155.0, conv.Profile.Calories)
	assert.Equal(t, "per 1 cup", conv.Basis)

	ref, err := svc.FindReference(ctx, recipe.ID, user)
	require.NoError(t, err)
	assert.Equal(t, "Shortbread", ref.Name)

	_, err = svc.FindReference(ctx, recipe.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestRecipeService_NestedRecipes(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), fakeFoods{})
	ctx := context.Background()
	user := uuid.NewString()

	base, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Name: "Stock"}, user)
	require.NoError(t, err)
	_, err = svc.AddRecipeItem(ctx, base.ID, domain.LineItemRequest{
		Kind: "custom", Name: "bones", Nutrients: &domain.NutrientsRequest{Calories: 80, Protein: 10},
	}, user)
	require.NoError(t, err)

	_, err = svc.AddRecipeItem(ctx, base.ID, domain.LineItemRequest{
		Kind: "recipe", SourceID: base.ID, Quantity: 1, Unit: "cup",
	}, user)
	assert.ErrorIs(t, err, domain.ErrRecipeSelfReference)

	_, err = svc.AddRecipeItem(ctx, base.ID, domain.LineItemRequest{Kind: "note", Name: "simmer"}, user)
	assert.ErrorIs(t, err, domain.ErrRecipeItemKind)

	soup, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Name: "Soup", YieldCups: 4}, user)
	require.NoError(t, err)
	soup, err = svc.AddRecipeItem(ctx, soup.ID, domain.LineItemRequest{
		Kind: "recipe", SourceID: base.ID, Quantity: 2, Unit: "cup",
	}, user)
	require.NoError(t, err)
	require.Len(t, soup.Items, 1)
	assert.Equal(t, "recipe", soup.Items[0].Kind)
	assert.Equal(t, nutrition.Profile{Calories: 160, Protein: 20}, soup.Items[0].Nutrients)
	assert.Equal(t, nutrition.Profile{Calories: 40, Protein: 5}, soup.PerCup)

	soup, err = svc.DeleteRecipeItem(ctx, soup.ID, soup.Items[0].ID, user)
	require.NoError(t, err)
	assert.Empty(t, soup.Items)
	assert.Equal(t, nutrition.Profile{}, soup.Totals)

	_, err = svc.DeleteRecipeItem(ctx, soup.ID, uuid.NewString(), user)
	assert.ErrorIs(t, err, domain.ErrRecipeItemNotFound)
}

func TestRecipeService_CRUD(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), fakeFoods{})
	ctx := context.Background()
	user := uuid.NewString()

	recipe, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{Name: "Granola"}, user)
	require.NoError(t, err)
	assert.Equal(t, 1.0, recipe.YieldCups)

	yield := 3.0
	desc := "bake at 160C"
	recipe, err = svc.UpdateRecipe(ctx, recipe.ID, domain.UpdateRecipeRequest{YieldCups: &yield, Description: &desc}, user)
	require.NoError(t, err)
	assert.Equal(t, 3.0, recipe.YieldCups)
	assert.Equal(t, "Granola", recipe.Name)

	list, count, err := svc.GetRecipes(ctx, 0, 0, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, recipe.ID, uuid.NewString()), domain.ErrUnauthorizedRecipeAccess)
	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID, user))
	_, err = svc.GetRecipeByID(ctx, recipe.ID, user)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
