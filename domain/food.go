package domain

import (
	"errors"

	"nutrilog-backend/pkg/nutrition"
)

var (
	MessageSuccessCreateFood  = "food created successfully"
	MessageSuccessUpdateFood  = "food updated successfully"
	MessageSuccessDeleteFood  = "food deleted successfully"
	MessageSuccessGetFoods    = "foods retrieved successfully"
	MessageSuccessGetFood     = "food retrieved successfully"
	MessageSuccessConvert     = "serving converted successfully"
	MessageSuccessSearchFoods = "food search completed"
	MessageSuccessImportFood  = "food imported successfully"

	MessageFailedCreateFood  = "failed to create food"
	MessageFailedUpdateFood  = "failed to update food"
	MessageFailedDeleteFood  = "failed to delete food"
	MessageFailedGetFoods    = "failed to retrieve foods"
	MessageFailedGetFood     = "failed to retrieve food"
	MessageFailedConvert     = "failed to convert serving"
	MessageFailedSearchFoods = "failed to search foods"
	MessageFailedImportFood  = "failed to import food"
	MessageLookupUnavailable = "food search is unavailable right now, please try again later"

	ErrFoodNotFound           = errors.New("food not found")
	ErrUnauthorizedFoodAccess = errors.New("unauthorized access to food")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrInvalidUnit            = errors.New("unit must be one of cup, tbsp, tsp, each, package")
	ErrInvalidBasis           = errors.New("basis must be cup or 100g")
	ErrLookupUnavailable      = errors.New("food lookup unavailable")
)

type (
	CreateFoodRequest struct {
		Name          string           `json:"name" validate:"required,max=200"`
		Brand         string           `json:"brand" validate:"max=200"`
		Basis         string           `json:"basis" validate:"required,oneof=cup 100g"`
		Nutrients     NutrientsRequest `json:"nutrients" validate:"required"`
		CupGramWeight *float64         `json:"cup_gram_weight" validate:"omitempty,gt=0"`
	}

	UpdateFoodRequest struct {
		Name          string            `json:"name" validate:"omitempty,max=200"`
		Brand         *string           `json:"brand" validate:"omitempty,max=200"`
		Nutrients     *NutrientsRequest `json:"nutrients" validate:"omitempty"`
		CupGramWeight *float64          `json:"cup_gram_weight" validate:"omitempty,gt=0"`
	}

	FoodResponse struct {
		ID            string            `json:"id"`
		Name          string            `json:"name"`
		Brand         string            `json:"brand,omitempty"`
		Basis         nutrition.Basis   `json:"basis"`
		Nutrients     nutrition.Profile `json:"nutrients"`
		CupGramWeight *float64          `json:"cup_gram_weight,omitempty"`
		Source        string            `json:"source"`
		ExternalID    string            `json:"external_id,omitempty"`
		Reference     string            `json:"reference"`
		Degraded      bool              `json:"degraded"`
	}

	ConvertRequest struct {
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required,serving_unit"`
	}

	ExternalFoodResponse struct {
		ExternalID    string              `json:"external_id"`
		Name          string              `json:"name"`
		Brand         string              `json:"brand,omitempty"`
		Nutrients     nutrition.Profile   `json:"nutrients"`
		Portions      []nutrition.Portion `json:"portions"`
		CupGramWeight *float64            `json:"cup_gram_weight,omitempty"`
	}

	ImportFoodRequest struct {
		ExternalID string `json:"external_id" validate:"required"`
		Name       string `json:"name" validate:"omitempty,max=200"`
	}

	// ReferenceResult is a named reference profile that line items are
	// converted from.
	ReferenceResult struct {
		Name      string
		Reference nutrition.Reference
	}
)
