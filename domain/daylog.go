package domain

import (
	"errors"

	"nutrilog-backend/pkg/nutrition"
)

var (
	MessageSuccessGetDay      = "day retrieved successfully"
	MessageSuccessAddMeal     = "meal added successfully"
	MessageSuccessAddMealItem = "item added successfully"
	MessageSuccessDeleteItem  = "item deleted successfully"
	MessageSuccessDeleteMeal  = "meal deleted successfully"
	MessageSuccessUpdateWater = "water intake updated successfully"
	MessageSuccessToggleLock  = "day lock updated successfully"
	MessageSuccessGetWeek     = "week summary retrieved successfully"

	MessageFailedGetDay      = "failed to get day"
	MessageFailedAddMeal     = "failed to add meal"
	MessageFailedAddMealItem = "failed to add item"
	MessageFailedDeleteItem  = "failed to delete item"
	MessageFailedDeleteMeal  = "failed to delete meal"
	MessageFailedUpdateWater = "failed to update water intake"
	MessageFailedToggleLock  = "failed to update day lock"
	MessageFailedGetWeek     = "failed to get week summary"

	ErrDayLocked             = errors.New("day is locked")
	ErrNegativeWater         = errors.New("water intake cannot be negative")
	ErrMealNotFound          = errors.New("meal not found")
	ErrMealItemNotFound      = errors.New("meal item not found")
	ErrMealNameRequired      = errors.New("meal id or meal name is required")
	ErrUnauthorizedDayAccess = errors.New("unauthorized access to day")
)

type (
	AddMealRequest struct {
		Name string `json:"name" validate:"required,max=64"`
	}

	AddMealItemRequest struct {
		MealID   string `json:"meal_id" validate:"omitempty,uuid"`
		MealName string `json:"meal_name" validate:"required_without=MealID,max=64"`
		LineItemRequest
	}

	SetWaterRequest struct {
		WaterIntake float64 `json:"water_intake" validate:"min=0"`
	}

	AdjustWaterRequest struct {
		Delta float64 `json:"delta" validate:"required"`
	}

	DayResponse struct {
		ID          string            `json:"id"`
		Date        string            `json:"date"`
		WeekID      string            `json:"week_id"`
		Totals      nutrition.Profile `json:"totals"`
		WaterIntake float64           `json:"water_intake"`
		IsLocked    bool              `json:"is_locked"`
		State       string            `json:"state"`
		Meals       []MealResponse    `json:"meals"`
	}

	MealResponse struct {
		ID     string             `json:"id"`
		Name   string             `json:"name"`
		Order  int                `json:"order"`
		Totals nutrition.Profile  `json:"totals"`
		Items  []LineItemResponse `json:"items"`
	}

	AddMealItemResponse struct {
		MealID   string           `json:"meal_id"`
		Item     LineItemResponse `json:"item"`
		Basis    string           `json:"basis,omitempty"`
		Degraded bool             `json:"degraded"`
		Day      DayResponse      `json:"day"`
	}

	DaySummary struct {
		Date        string            `json:"date"`
		Totals      nutrition.Profile `json:"totals"`
		WaterIntake float64           `json:"water_intake"`
		IsLocked    bool              `json:"is_locked"`
	}

	WeekSummaryResponse struct {
		ID        string           `json:"id"`
		StartDate string           `json:"start_date"`
		EndDate   string           `json:"end_date"`
		Days      []DaySummary     `json:"days"`
		Totals    nutrition.Totals `json:"totals"`
	}
)
