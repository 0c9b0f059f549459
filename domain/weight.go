package domain

import "errors"

var (
	MessageSuccessLogWeight    = "weight logged successfully"
	MessageSuccessGetWeights   = "weight history retrieved successfully"
	MessageSuccessDeleteWeight = "weight entry deleted successfully"

	MessageFailedLogWeight    = "failed to log weight"
	MessageFailedGetWeights   = "failed to retrieve weight history"
	MessageFailedDeleteWeight = "failed to delete weight entry"

	ErrWeightEntryNotFound      = errors.New("weight entry not found")
	ErrUnauthorizedWeightAccess = errors.New("unauthorized access to weight entry")
	ErrInvalidWeightUnit        = errors.New("weight unit must be kg or lb")
	ErrInvalidWeight            = errors.New("weight must be positive")
	ErrInvalidDateRange         = errors.New("from date must not be after to date")
)

type (
	LogWeightRequest struct {
		Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
		Weight float64 `json:"weight" validate:"required,gt=0"`
		Unit   string  `json:"unit" validate:"omitempty,oneof=kg lb"`
	}

	WeightEntryResponse struct {
		ID       string  `json:"id"`
		Date     string  `json:"date"`
		WeightKg float64 `json:"weight_kg"`
		WeightLb float64 `json:"weight_lb"`
	}

	WeightHistoryResponse struct {
		Entries  []WeightEntryResponse `json:"entries"`
		ChangeKg float64               `json:"change_kg"`
		ChangeLb float64               `json:"change_lb"`
	}
)
