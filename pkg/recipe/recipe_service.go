package recipe

import (
	"context"
	"errors"
	"nutrilog-backend/domain"
	"nutrilog-backend/entities"
	"nutrilog-backend/pkg/lineitem"
	"nutrilog-backend/pkg/nutrition"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
		GetRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeByID(ctx context.Context, id string, userID string) (domain.RecipeResponse, error)
		AddRecipeItem(ctx context.Context, id string, req domain.LineItemRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipeItem(ctx context.Context, id string, itemID string, userID string) (domain.RecipeResponse, error)
		Convert(ctx context.Context, id string, req domain.ConvertRequest, userID string) (nutrition.Conversion, error)
		FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		items            *lineitem.Resolver
	}
)

// NewRecipeService builds the service. Recipe items may reference foods found
// through foods and other recipes of the same user.
func NewRecipeService(recipeRepository RecipeRepository, foods lineitem.ReferenceFinder) RecipeService {
	s := &recipeService{recipeRepository: recipeRepository}
	s.items = lineitem.NewResolver(foods, s)
	return s
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	yield := req.YieldCups
	if yield <= 0 {
		yield = 1
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		YieldCups:   yield,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Name != "" {
		recipe.Name = strings.TrimSpace(req.Name)
	}

	if req.Description != nil {
		recipe.Description = *req.Description
	}

	if req.YieldCups != nil && *req.YieldCups > 0 {
		recipe.YieldCups = *req.YieldCups
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}

	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeResponse, int64, error) {
	if page <= 0 {
		page = 1
	}

	if limit <= 0 {
		limit = 10
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		r := toRecipeResponse(recipe)
		r.Items = nil
		res = append(res, r)
	}

	return res, count, nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

// AddRecipeItem converts req and appends it after the recipe's last item.
func (s *recipeService) AddRecipeItem(ctx context.Context, id string, req domain.LineItemRequest, userID string) (domain.RecipeResponse, error) {
	if req.Kind == entities.ItemKindNote {
		return domain.RecipeResponse{}, domain.ErrRecipeItemKind
	}

	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Kind == entities.ItemKindRecipe && req.SourceID == recipe.ID.String() {
		return domain.RecipeResponse{}, domain.ErrRecipeSelfReference
	}

	resolved, err := s.items.Resolve(ctx, req, userID)
	if err != nil {
		if errors.Is(err, lineitem.ErrUnsupportedKind) {
			return domain.RecipeResponse{}, domain.ErrRecipeItemKind
		}
		return domain.RecipeResponse{}, err
	}

	order := 0
	for _, it := range recipe.Items {
		if it.Order >= order {
			order = it.Order + 1
		}
	}

	item := entities.RecipeItem{
		ID:          uuid.New(),
		RecipeID:    recipe.ID,
		UserID:      recipe.UserID,
		Kind:        resolved.Kind,
		SourceID:    resolved.SourceID,
		Name:        resolved.Name,
		ServingText: resolved.ServingText,
		Nutrients:   resolved.Nutrients,
		Order:       order,
	}

	if err := s.recipeRepository.CreateRecipeItem(ctx, &item); err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Items = append(recipe.Items, item)
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) DeleteRecipeItem(ctx context.Context, id string, itemID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	idx := -1
	for i, it := range recipe.Items {
		if it.ID.String() == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.RecipeResponse{}, domain.ErrRecipeItemNotFound
	}

	if err := s.recipeRepository.DeleteRecipeItem(ctx, itemID); err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Items = append(recipe.Items[:idx], recipe.Items[idx+1:]...)
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) Convert(ctx context.Context, id string, req domain.ConvertRequest, userID string) (nutrition.Conversion, error) {
	spec, err := lineitem.Serving(req.Quantity, req.Unit)
	if err != nil {
		return nutrition.Conversion{}, err
	}

	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return nutrition.Conversion{}, err
	}

	return nutrition.Convert(reference(recipe), spec), nil
}

func (s *recipeService) FindReference(ctx context.Context, id string, userID string) (domain.ReferenceResult, error) {
	recipe, err := s.owned(ctx, id, userID)
	if err != nil {
		return domain.ReferenceResult{}, err
	}

	return domain.ReferenceResult{Name: recipe.Name, Reference: reference(recipe)}, nil
}

func (s *recipeService) owned(ctx context.Context, id string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}

	return recipe, nil
}

func totals(recipe *entities.Recipe) nutrition.Profile {
	profiles := make([]nutrition.Profile, 0, len(recipe.Items))
	for _, it := range recipe.Items {
		profiles = append(profiles, it.Nutrients)
	}
	return nutrition.Aggregate(profiles...)
}

// reference is the recipe's per-cup profile: the sum of its items spread over
// the yield.
func reference(recipe *entities.Recipe) nutrition.Reference {
	yield := recipe.YieldCups
	if yield <= 0 {
		yield = 1
	}
	return nutrition.Reference{
		Profile: totals(recipe).Scale(1 / yield),
		Basis:   nutrition.BasisCup,
	}
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Description: recipe.Description,
		YieldCups:   recipe.YieldCups,
		Totals:      totals(recipe),
		PerCup:      reference(recipe).Profile.Rounded(),
		Items:       make([]domain.LineItemResponse, 0, len(recipe.Items)),
	}
	for _, it := range recipe.Items {
		res.Items = append(res.Items, lineitem.Response(it.ID, it.Kind, it.SourceID, it.Name, it.ServingText, it.Nutrients, it.Order))
	}
	return res
}
