package domain

import (
	"errors"

	"nutrilog-backend/pkg/nutrition"
)

var (
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessAddRecipeItem    = "recipe item added successfully"
	MessageSuccessDeleteRecipeItem = "recipe item deleted successfully"

	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedUpdateRecipe     = "failed to update recipe"
	MessageFailedDeleteRecipe     = "failed to delete recipe"
	MessageFailedGetRecipes       = "failed to get recipes"
	MessageFailedGetRecipeDetail  = "failed to get recipe detail"
	MessageFailedAddRecipeItem    = "failed to add recipe item"
	MessageFailedDeleteRecipeItem = "failed to delete recipe item"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrRecipeItemNotFound       = errors.New("recipe item not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeSelfReference      = errors.New("recipe cannot contain itself")
	ErrRecipeItemKind           = errors.New("recipe items must be food, recipe or custom")
)

type (
	CreateRecipeRequest struct {
		Name        string  `json:"name" validate:"required,max=200"`
		Description string  `json:"description" validate:"max=5000"`
		YieldCups   float64 `json:"yield_cups" validate:"omitempty,gt=0"`
	}

	UpdateRecipeRequest struct {
		Name        string   `json:"name" validate:"omitempty,max=200"`
		Description *string  `json:"description" validate:"omitempty,max=5000"`
		YieldCups   *float64 `json:"yield_cups" validate:"omitempty,gt=0"`
	}

	RecipeResponse struct {
		ID          string             `json:"id"`
		Name        string             `json:"name"`
		Description string             `json:"description"`
		YieldCups   float64            `json:"yield_cups"`
		Totals      nutrition.Profile  `json:"totals"`
		PerCup      nutrition.Profile  `json:"per_cup"`
		Items       []LineItemResponse `json:"items,omitempty"`
	}
)
